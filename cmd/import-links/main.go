// Command import-links converts an HTML page of links into a catalog CSV
// with the conventional headers, ready for merchlink --catalog.
package main

import (
	"encoding/csv"
	"flag"
	"log"
	"os"

	"github.com/merchlink/merchlink/pkg/merchlink/catalog"
)

func main() {
	var (
		in  = flag.String("in", "", "HTML file to import (required)")
		out = flag.String("out", "catalog.csv", "Output CSV path")
	)
	flag.Parse()

	if *in == "" {
		log.Fatal("--in required")
	}

	f, err := os.Open(*in)
	if err != nil {
		log.Fatal("open input:", err)
	}
	defer f.Close()

	cat, stats, err := catalog.FromHTML(f)
	if err != nil {
		log.Fatal("parse input:", err)
	}

	outFile, err := os.Create(*out)
	if err != nil {
		log.Fatal("create output:", err)
	}
	defer outFile.Close()

	w := csv.NewWriter(outFile)
	cols := catalog.DefaultColumns()
	if err := w.Write([]string{cols.Phrase, cols.URL, cols.Anchor}); err != nil {
		log.Fatal("write header:", err)
	}
	for _, e := range cat.Entries() {
		if err := w.Write([]string{e.Phrase, e.URL, e.Anchor}); err != nil {
			log.Fatal("write row:", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatal("flush output:", err)
	}

	log.Printf("Imported %d links (%d dropped) into %s", stats.Loaded, stats.Dropped, *out)
}
