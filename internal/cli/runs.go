package cli

import (
	"encoding/json"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/omicalign/omicalign/pkg/store"
)

// storeFlags holds the MongoDB connection flags shared by runs subcommands.
type storeFlags struct {
	uri  string
	db   string
	coll string
}

func (f *storeFlags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.uri, "uri", "mongodb://localhost:27017", "MongoDB URI")
	cmd.PersistentFlags().StringVar(&f.db, "db", appName, "MongoDB database")
	cmd.PersistentFlags().StringVar(&f.coll, "collection", "", "MongoDB collection")
}

func (f *storeFlags) open(cmd *cobra.Command) (*store.MongoStore, error) {
	return store.NewMongoStore(cmd.Context(), f.uri, f.db, f.coll)
}

// runsCommand creates the runs command for managing persisted alignment runs.
func (c *CLI) runsCommand() *cobra.Command {
	flags := &storeFlags{}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Manage persisted alignment runs",
	}
	flags.register(cmd)

	cmd.AddCommand(c.runsListCommand(flags))
	cmd.AddCommand(c.runsShowCommand(flags))
	cmd.AddCommand(c.runsDeleteCommand(flags))

	return cmd
}

// runsListCommand creates the "runs list" subcommand.
func (c *CLI) runsListCommand(flags *storeFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List persisted runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := flags.open(cmd)
			if err != nil {
				return err
			}
			defer st.Close(cmd.Context())

			infos, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				printInfo("No persisted runs")
				return nil
			}
			for _, info := range infos {
				printInfo("%s", info.RunID)
				printDetail("created %s", info.Created.Format("2006-01-02 15:04:05"))
				printStats(info.Stats.Groups, info.Stats.Members, info.Stats.Relations, false)
			}
			return nil
		},
	}
}

// runsShowCommand creates the "runs show" subcommand.
func (c *CLI) runsShowCommand(flags *storeFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show [run-id]",
		Short: "Print or export a persisted run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := flags.open(cmd)
			if err != nil {
				return err
			}
			defer st.Close(cmd.Context())

			doc, err := st.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if output != "" {
				data, err := json.MarshalIndent(doc, "", "  ")
				if err != nil {
					return err
				}
				if err := writeArtifact(output, data); err != nil {
					return err
				}
				printFile(output)
				return nil
			}

			printKeyValue("run id", args[0])
			printKeyValue("created", doc.Created.Format("2006-01-02 15:04:05"))
			printKeyValue("groups", strconv.Itoa(doc.Stats.Groups))
			printKeyValue("members", strconv.Itoa(doc.Stats.Members))
			printKeyValue("relations", strconv.Itoa(doc.Stats.Relations))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the run document to a file")
	return cmd
}

// runsDeleteCommand creates the "runs delete" subcommand.
func (c *CLI) runsDeleteCommand(flags *storeFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [run-id]",
		Short: "Delete a persisted run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := flags.open(cmd)
			if err != nil {
				return err
			}
			defer st.Close(cmd.Context())

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted run %s", args[0])
			return nil
		},
	}
}
