package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/davemarvit/SGFPlayer-sub000/internal/placement"
)

var algorithmsCmd = &cobra.Command{
	Use:     "algorithms",
	Aliases: []string{"list"},
	Short:   "List the placement algorithms",
	Long:    `Shows every placement algorithm, how it handles a growing bowl, and which one is active.`,
	Args:    cobra.NoArgs,
	Run:     runAlgorithms,
}

func runAlgorithms(_ *cobra.Command, _ []string) {
	fmt.Println("Placement algorithms:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, v := range placement.Variants {
		maxIDLen = max(maxIDLen, len(v.String()))
	}

	fmt.Printf("  %-*s  %-22s  %s\n", maxIDLen, "ID", "Title", "When stones are added")
	fmt.Printf("  %-*s  %-22s  %s\n", maxIDLen, "--", "-----", "---------------------")
	for _, v := range placement.Variants {
		marker := " "
		if v == appSelection.Variant {
			marker = "*"
		}
		fmt.Printf("%s %-*s  %-22s  %s\n", marker, maxIDLen, v, v.Title(), v.GrowthPolicy())
	}

	fmt.Println()
	fmt.Println("* active. Use --variant <id> or set 'variant' in the config to change it.")
}
