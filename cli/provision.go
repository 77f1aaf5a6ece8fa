// Copyright (c) Salvare
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/0x6flab/namegenerator"
	"github.com/salvare/shelter"
	"github.com/salvare/shelter/pkg/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	jsonExt = ".json"
	csvExt  = ".csv"

	// maxWorkers bounds the concurrent inserts of a bulk load.
	maxWorkers = 8
)

var (
	namesgenerator = namegenerator.NewGenerator()
	idProvider     = uuid.New()

	errUnsupportedFileType = errors.New("unsupported file type")
)

// Sample record vocabulary, drawn from the Austin Animal Center outcomes
// data set the default collection is modeled on.
var (
	animalTypes = []string{"Dog", "Cat"}
	dogBreeds   = []string{"Labrador Retriever Mix", "German Shepherd", "Pit Bull Mix", "Australian Cattle Dog Mix", "Chihuahua Shorthair Mix"}
	catBreeds   = []string{"Domestic Shorthair Mix", "Domestic Medium Hair Mix", "Siamese Mix", "Maine Coon Mix"}
	colors      = []string{"Black", "Black/White", "Brown Tabby", "Tan/White", "Tricolor", "Blue Merle"}
	sexes       = []string{"Intact Male", "Intact Female", "Neutered Male", "Spayed Female", "Unknown"}
	outcomes    = []string{"Adoption", "Transfer", "Return to Owner", "Rto-Adopt", "Euthanasia"}
)

var cmdProvision = []cobra.Command{
	{
		Use:   "animals <records_file>",
		Short: "Provision animal records",
		Long:  `Bulk create animal records from a JSON array or a CSV export file with a header row`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			animals, err := animalsFromFile(args[0])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			if err := bulkCreate(cmd.Context(), animals); err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logCountCmd(*cmd, "provisioned", int64(len(animals)))
		},
	},
	{
		Use:   "sample <count>",
		Short: "Provision sample records",
		Long:  `Generate and create synthetic animal records for test setups`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			count, err := strconv.Atoi(args[0])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			animals := make([]shelter.Document, 0, count)
			for i := 0; i < count; i++ {
				doc, err := sampleAnimal()
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}
				animals = append(animals, doc)
			}

			if err := bulkCreate(cmd.Context(), animals); err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logCountCmd(*cmd, "provisioned", int64(len(animals)))
		},
	},
}

// NewProvisionCmd returns provision command.
func NewProvisionCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "provision [animals | sample]",
		Short: "Provision animal records from a file",
		Long:  `Provision animal records: bulk create records from a json or csv file, or generate sample ones`,
	}

	for i := range cmdProvision {
		cmd.AddCommand(&cmdProvision[i])
	}

	return &cmd
}

func animalsFromFile(path string) ([]shelter.Document, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return []shelter.Document{}, err
	}

	file, err := os.OpenFile(path, os.O_RDONLY, os.ModePerm)
	if err != nil {
		return []shelter.Document{}, err
	}
	defer file.Close()

	animals := []shelter.Document{}
	switch filepath.Ext(path) {
	case csvExt:
		reader := csv.NewReader(file)

		header, err := reader.Read()
		if err != nil {
			return []shelter.Document{}, err
		}

		for {
			l, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return []shelter.Document{}, err
			}

			doc := shelter.Document{}
			for i, field := range header {
				doc[field] = l[i]
			}

			animals = append(animals, doc)
		}
	case jsonExt:
		if err := json.NewDecoder(file).Decode(&animals); err != nil {
			return []shelter.Document{}, err
		}
	default:
		return []shelter.Document{}, errUnsupportedFileType
	}

	return animals, nil
}

// bulkCreate inserts the records over a single repository connection with
// a bounded number of concurrent writers. The first failing insert cancels
// the remaining ones.
func bulkCreate(ctx context.Context, docs []shelter.Document) error {
	return runWithRepository(ctx, func(repo shelter.Repository) error {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(maxWorkers)

		for _, doc := range docs {
			doc := doc
			g.Go(func() error {
				_, err := repo.Create(gctx, doc)
				return err
			})
		}

		return g.Wait()
	})
}

func sampleAnimal() (shelter.Document, error) {
	id, err := idProvider.ID()
	if err != nil {
		return shelter.Document{}, err
	}

	animalType := animalTypes[rand.Intn(len(animalTypes))]
	breeds := catBreeds
	if animalType == "Dog" {
		breeds = dogBreeds
	}

	ageWeeks := 1 + rand.Intn(520)
	birth := time.Now().UTC().AddDate(0, 0, -7*ageWeeks)

	return shelter.Document{
		"animal_id":                 id,
		"name":                      namesgenerator.Generate(),
		"animal_type":               animalType,
		"breed":                     breeds[rand.Intn(len(breeds))],
		"color":                     colors[rand.Intn(len(colors))],
		"sex_upon_outcome":          sexes[rand.Intn(len(sexes))],
		"outcome_type":              outcomes[rand.Intn(len(outcomes))],
		"date_of_birth":             birth.Format("2006-01-02"),
		"age_upon_outcome":          fmt.Sprintf("%d weeks", ageWeeks),
		"age_upon_outcome_in_weeks": float64(ageWeeks),
		"location_lat":              30.3 + rand.Float64()*0.5,
		"location_long":             -97.9 + rand.Float64()*0.5,
	}, nil
}
