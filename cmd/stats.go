package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathbuddy/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd, "")
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		report, err := stats.NewService(st.ProblemRepo()).History(cmd.Context())
		if err != nil {
			return err
		}

		s := report.Statistics
		fmt.Println("Practice Statistics")
		fmt.Println(strings.Repeat("─", 40))
		fmt.Printf("%-18s %d\n", "Problems solved", s.TotalProblems)
		fmt.Printf("%-18s %d\n", "Correct answers", s.CorrectAnswers)
		fmt.Printf("%-18s %d%%\n", "Accuracy", s.Accuracy)
		fmt.Printf("%-18s %d\n", "Total score", s.TotalScore)
		fmt.Printf("%-18s %d\n", "Current streak", s.CurrentStreak)
		return nil
	},
}
