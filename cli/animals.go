// Copyright (c) Salvare
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"github.com/salvare/shelter"
	"github.com/spf13/cobra"
)

var cmdAnimals = []cobra.Command{
	{
		Use:   "create <record_JSON>",
		Short: "Create animal record",
		Long: "Insert a single animal record\n" +
			"usage:\n" +
			"\tshelter-cli animals create '{\"name\":\"Rex\",\"animal_type\":\"Dog\"}'\n",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			doc, err := parseJSON(args[0])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			err = runWithRepository(cmd.Context(), func(repo shelter.Repository) error {
				_, err := repo.Create(cmd.Context(), shelter.Document(doc))
				return err
			})
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logOKCmd(*cmd)
		},
	},
	{
		Use:   "read [query_JSON]",
		Short: "Read animal records",
		Long: "Read the animal records matching the query, all of them when no query is given\n" +
			"usage:\n" +
			"\tshelter-cli animals read '{\"animal_type\":\"Dog\"}' --limit 10 --sort name:asc --projection name,breed\n",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) > 1 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			var qry shelter.Query
			if len(args) == 1 {
				q, err := parseJSON(args[0])
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}
				qry = shelter.Query(q)
			}

			sort, err := parseSort(Sort)
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			var docs []shelter.Document
			err = runWithRepository(cmd.Context(), func(repo shelter.Repository) error {
				var err error
				docs, err = repo.Read(cmd.Context(), qry, shelter.ReadOptions{
					Projection: parseProjection(Projection),
					Limit:      Limit,
					Sort:       sort,
				})
				return err
			})
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, docs)
		},
	},
	{
		Use:   "update <query_JSON> <update_JSON>",
		Short: "Update animal records",
		Long: "Apply a MongoDB update document to the first matching record, or to every match with --many\n" +
			"usage:\n" +
			"\tshelter-cli animals update '{\"name\":\"Rex\"}' '{\"$set\":{\"outcome_type\":\"Adoption\"}}'\n",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			qry, err := parseJSON(args[0])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			upd, err := parseJSON(args[1])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			var modified int64
			err = runWithRepository(cmd.Context(), func(repo shelter.Repository) error {
				var err error
				modified, err = repo.Update(cmd.Context(), shelter.Query(qry), shelter.UpdateSpec(upd), Many, Upsert)
				return err
			})
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logCountCmd(*cmd, "modified", modified)
		},
	},
	{
		Use:   "delete <query_JSON>",
		Short: "Delete animal records",
		Long: "Delete the first record matching the query, or every match with --many\n" +
			"usage:\n" +
			"\tshelter-cli animals delete '{\"animal_id\":\"A721033\"}'\n",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			qry, err := parseJSON(args[0])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			var deleted int64
			err = runWithRepository(cmd.Context(), func(repo shelter.Repository) error {
				var err error
				deleted, err = repo.Delete(cmd.Context(), shelter.Query(qry), Many)
				return err
			})
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logCountCmd(*cmd, "deleted", deleted)
		},
	},
}

// NewAnimalsCmd returns animals command.
func NewAnimalsCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "animals [create | read | update | delete]",
		Short: "Animal records CRUD",
		Long:  `Create, read, update and delete animal records in the configured collection`,
	}

	for i := range cmdAnimals {
		cmd.AddCommand(&cmdAnimals[i])
	}

	cmd.PersistentFlags().Int64VarP(&Limit, "limit", "l", Limit, "bound on the number of records read returns, 0 means all")
	cmd.PersistentFlags().StringVarP(&Sort, "sort", "s", Sort, "sort specification, \"field:asc\" or \"field:desc\", comma separated")
	cmd.PersistentFlags().StringVarP(&Projection, "projection", "p", Projection, "record fields read returns, comma separated")
	cmd.PersistentFlags().BoolVarP(&Many, "many", "m", Many, "apply updates and deletes to every matching record")
	cmd.PersistentFlags().BoolVarP(&Upsert, "upsert", "u", Upsert, "insert a record when the update matches nothing")

	return &cmd
}
