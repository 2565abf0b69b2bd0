package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Print the visitor log",
	Long: `Prints every recorded visitor with their owner type, tracker progress,
engagement classification, and lead status, in first-seen order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		sums, err := st.LoadSummaries()
		if err != nil {
			return err
		}
		if len(sums) == 0 {
			fmt.Println("No visitors recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "VISITOR\tTYPE\tDAY\tRATE\tDENSITY\tSTATUS\tLAST SEEN")
		for _, sum := range sums {
			fmt.Fprintf(w, "%s\t%s\t%d\t%.0f%%\t%s\t%s\t%s\n",
				sum.UserID, sum.UserType, sum.TrackerDay, sum.CompletionRate,
				sum.AnswerDensity, sum.Status, sum.LastActivity.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print visitor aggregates",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.Stats()
		if err != nil {
			return err
		}
		fmt.Printf("Visitors:   %d\n", stats.Total)
		fmt.Printf("In tracker: %d\n", stats.InTracker)
		fmt.Printf("Completed:  %d\n", stats.Completed)
		return nil
	},
}

var activityLimit int

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Print recent activity events",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		events, err := st.RecentActivity(activityLimit)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Println("No activity recorded yet.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tVISITOR\tEVENT\tDETAIL")
		for _, ev := range events {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				ev.CreatedAt.Format("2006-01-02 15:04:05"), ev.UserID, ev.Event, ev.Detail)
		}
		return w.Flush()
	},
}

func init() {
	activityCmd.Flags().IntVarP(&activityLimit, "limit", "n", 20, "maximum events to print")
}
