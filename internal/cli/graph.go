package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [path]",
	Short: "Dump the dependency graph",
	Long: `Graph prints the repository's import dependency graph as JSON nodes and
edges. With a path argument, only that file's imports and importers are
printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGraph,
}

// cyclesCmd represents the cycles command
var cyclesCmd = &cobra.Command{
	Use:   "cycles",
	Short: "List import cycles",
	Long:  `Cycles lists every distinct import cycle in the dependency graph.`,
	RunE:  runCycles,
}

// orphansCmd represents the orphans command
var orphansCmd = &cobra.Command{
	Use:   "orphans",
	Short: "List exported symbols nobody imports",
	Long:  `Orphans lists every exported symbol with zero fan-in across the repository.`,
	RunE:  runOrphans,
}

func init() {
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(cyclesCmd)
	rootCmd.AddCommand(orphansCmd)
}

func runGraph(cmd *cobra.Command, args []string) error {
	eng, err := indexedEngine()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		g, err := eng.Graph()
		if err != nil {
			return err
		}
		path := args[0]
		if g.Node(path) == nil {
			return fmt.Errorf("path %q is not in the index", path)
		}
		return printJSON(map[string]interface{}{
			"path":        path,
			"imports":     g.ImportsOf(path),
			"imported_by": g.ImportersOf(path),
		})
	}

	dump, err := eng.DumpGraph()
	if err != nil {
		return err
	}
	return printJSON(dump)
}

func runCycles(cmd *cobra.Command, args []string) error {
	eng, err := indexedEngine()
	if err != nil {
		return err
	}

	cycles, err := eng.Cycles()
	if err != nil {
		return err
	}
	if len(cycles) == 0 {
		fmt.Println("No import cycles found.")
		return nil
	}
	for i, cycle := range cycles {
		fmt.Printf("cycle %d:\n", i+1)
		for _, path := range cycle {
			fmt.Printf("  %s\n", path)
		}
	}
	return nil
}

func runOrphans(cmd *cobra.Command, args []string) error {
	eng, err := indexedEngine()
	if err != nil {
		return err
	}

	orphans, err := eng.Orphans()
	if err != nil {
		return err
	}
	if len(orphans) == 0 {
		fmt.Println("No orphan exports found.")
		return nil
	}
	for _, sym := range orphans {
		fmt.Printf("%s:%d %s (%s)\n", sym.FilePath, sym.Line, sym.Name, sym.Kind)
	}
	return nil
}
