package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var countCmd = &cobra.Command{
	Use:     "count",
	Short:   "Show how many school systems the factory has deployed",
	Args:    cobra.NoArgs,
	PreRunE: ReadPreprocess,
	RunE: func(cmd *cobra.Command, args []string) error {
		cc, err := cmdContext(cmd)
		if err != nil {
			return err
		}
		count, err := cc.Factory.DeployedSchoolSystemsCount()
		if err != nil {
			return fmt.Errorf("couldn't read the deployed count: %w", err)
		}
		appUI.KeyValue([][2]string{
			{"Network", cc.Network.GetName()},
			{"Factory", cc.Factory.Address},
			{"Deployed school systems", count.String()},
		})
		return nil
	},
}

var schoolsCmd = &cobra.Command{
	Use:     "schools <owner>",
	Short:   "List the school systems owned by an address",
	Args:    cobra.ExactArgs(1),
	PreRunE: ReadPreprocess,
	RunE: func(cmd *cobra.Command, args []string) error {
		cc, err := cmdContext(cmd)
		if err != nil {
			return err
		}
		schools, err := cc.Factory.SchoolsByOwner(args[0])
		if err != nil {
			return err
		}
		if len(schools) == 0 {
			appUI.Info("%s owns no school system on %s.", args[0], cc.Network.GetName())
			return nil
		}
		rows := [][]string{}
		for i, s := range schools {
			rows = append(rows, []string{fmt.Sprintf("%d", i+1), s})
		}
		appUI.Section(fmt.Sprintf("School systems of %s", args[0]))
		appUI.Table([]string{"#", "Address"}, rows)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(schoolsCmd)
}
