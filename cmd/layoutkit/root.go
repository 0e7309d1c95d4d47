package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "layoutkit",
	Short: "Render structured documents into paginated output",
	Long: `layoutkit renders markdown or HTML documents into a paginated output
document, embedding referenced raster images and fixed-page (.fpx)
packages at their computed placement.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the layoutkit version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("layoutkit", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(renderCmd)
}
