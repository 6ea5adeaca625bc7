// Command bptree is an interactive driver for the bptree package: it reads
// integer keys from the terminal, inserts and erases them, and dumps the
// tree after every mutation.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"bptree"
	"bptree/logger"
)

func main() {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	tree := bptree.NewOrdered[int](bptree.WithLogger(logger.NewLogrus(log)))
	in := bufio.NewReader(os.Stdin)

	var n int
	fmt.Print("How many elements do you want to insert: ")
	if _, err := fmt.Fscan(in, &n); err != nil {
		log.WithError(err).Fatal("reading element count")
	}

	for i := 0; i < n; i++ {
		var x int
		if _, err := fmt.Fscan(in, &x); err != nil {
			log.WithError(err).Fatal("reading key")
		}
		if _, inserted := tree.Insert(x); !inserted {
			fmt.Printf("Key %d exists\n", x)
		} else {
			fmt.Printf("After insert %d:\n", x)
			_ = tree.Dump(os.Stdout)
		}
		fmt.Println()
	}

	for c := tree.Begin(); !c.Equal(tree.End()); c.Next() {
		fmt.Printf("%d ", c.Key())
	}
	fmt.Printf("\n\nfingerprint: %016x\n\n", tree.Fingerprint())

	fmt.Print("How many elements do you want to erase: ")
	if _, err := fmt.Fscan(in, &n); err != nil {
		log.WithError(err).Fatal("reading element count")
	}

	for i := 0; i < n; i++ {
		var x int
		if _, err := fmt.Fscan(in, &x); err != nil {
			log.WithError(err).Fatal("reading key")
		}
		c := tree.Find(x)
		if c.Equal(tree.End()) {
			fmt.Printf("Key %d doesn't exist\n\n", x)
			continue
		}
		if _, err := tree.Erase(c); err != nil {
			log.WithError(err).Fatal("erase")
		}
		fmt.Printf("After erase %d\n", x)
		_ = tree.Dump(os.Stdout)
		fmt.Println()
	}
}
