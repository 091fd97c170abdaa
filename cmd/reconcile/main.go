package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/savegress/ledgermatch/internal/csvio"
	"github.com/savegress/ledgermatch/internal/lineio"
	"github.com/savegress/ledgermatch/internal/reconciliation"
	"github.com/savegress/ledgermatch/pkg/models"
)

func main() {
	var (
		fileA     = flag.String("a", "", "CSV file with the first transaction group")
		fileB     = flag.String("b", "", "CSV file with the second transaction group")
		outA      = flag.String("out-a", "", "Destination for the annotated first group (optional)")
		outB      = flag.String("out-b", "", "Destination for the annotated second group (optional)")
		tolerance = flag.Int("tolerance", 1, "Date tolerance in days")
		tail      = flag.Int("tail", 0, "Print the last N lines of each input file before reconciling")
	)
	flag.Parse()

	if *fileA == "" || *fileB == "" {
		log.Fatal("both -a and -b input files are required")
	}
	if *tolerance < 0 {
		log.Fatal("-tolerance must not be negative")
	}

	if *tail > 0 {
		previewFile(*fileA, *tail)
		previewFile(*fileB, *tail)
	}

	var reader csvio.Reader
	groupA, err := reader.ReadFile(*fileA)
	if err != nil {
		log.Fatal(err)
	}
	groupB, err := reader.ReadFile(*fileB)
	if err != nil {
		log.Fatal(err)
	}

	reconciler := reconciliation.NewReconciler(reconciliation.NewToleranceMatcher(*tolerance))
	result, err := reconciler.Reconcile(groupA, groupB)
	if err != nil {
		log.Fatal(err)
	}

	printSummary(*fileA, result.GroupA)
	printSummary(*fileB, result.GroupB)

	if *outA != "" && *outB != "" {
		var writer csvio.Writer
		if err := writer.WriteResult(result, *outA, *outB); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("\nResults written to %s and %s\n", *outA, *outB)
	}
}

func previewFile(path string, n int) {
	lines, err := lineio.LastLines(path, n)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Last %d lines of %s:\n", len(lines), path)
	for _, line := range lines {
		fmt.Println("  " + line)
	}
	fmt.Println()
}

func printSummary(name string, records []models.AnnotatedRecord) {
	found, missing := 0, 0
	for _, rec := range records {
		if rec.Status == models.StatusFound {
			found++
		} else {
			missing++
		}
	}

	fmt.Printf("%s: %d records, %d found, %d missing\n", name, len(records), found, missing)
	for _, rec := range records {
		if rec.Status == models.StatusMissing {
			fmt.Printf("  MISSING %s,%s,%s,%s\n", rec.Date, rec.Department, rec.Amount, rec.Beneficiary)
		}
	}
}
