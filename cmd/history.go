package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathbuddy/internal/stats"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent answer submissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd, "")
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		report, err := stats.NewService(st.ProblemRepo()).History(cmd.Context())
		if err != nil {
			return err
		}
		if len(report.History) == 0 {
			fmt.Println("No submissions yet.")
			return nil
		}

		entries := report.History
		if limit > 0 && limit < len(entries) {
			entries = entries[:limit]
		}

		fmt.Printf("%-19s  %-2s  %-8s  %-8s  %-5s  %s\n",
			"Completed", "OK", "Answer", "Correct", "Score", "Problem")
		fmt.Println(strings.Repeat("─", 100))
		for _, e := range entries {
			ok := "✓"
			if !e.IsCorrect {
				ok = "✗"
			}
			fmt.Printf("%-19s  %-2s  %-8s  %-8s  %-5d  %s\n",
				e.CompletedAt.Local().Format("2006-01-02 15:04:05"),
				ok,
				formatNumber(e.UserAnswer),
				formatNumber(e.CorrectAnswer),
				e.Score,
				truncate(e.ProblemText, 50),
			)
		}
		fmt.Printf("\n%s\n", stats.DisplayNote)
		return nil
	},
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func init() {
	historyCmd.Flags().IntP("limit", "n", stats.HistoryLimit, "Number of submissions to show")
}
