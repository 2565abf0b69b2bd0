package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe the current session and start over",
	Long: `Deletes the in-progress session and the visitor identity. The visitor
log and activity history are kept; the next run starts a fresh assessment
under a new identity.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("refusing to reset without --yes")
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Reset(); err != nil {
			return err
		}
		fmt.Println("Session cleared. The next run starts fresh.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "confirm the reset")
}
