// Package export writes simulation series to CSV and JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/sarchlab/sirda/model"
	"github.com/sarchlab/sirda/sim"
)

// CSVHeader is the first row written by WriteCSV.
var CSVHeader = []string{"day", "S", "I", "D", "A", "R"}

// WriteCSV writes one row per day with the five compartment values.
func WriteCSV(w io.Writer, series sim.Series) error {
	cw := csv.NewWriter(w)

	err := cw.Write(CSVHeader)
	if err != nil {
		return err
	}

	row := make([]string, len(CSVHeader))
	for i, sample := range series.Samples() {
		row[0] = strconv.Itoa(series.Susceptible[i].Day)
		for j, c := range model.Compartments {
			row[j+1] = strconv.FormatFloat(sample.State.Get(c), 'g', -1, 64)
		}

		err = cw.Write(row)
		if err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteJSON writes the series as a JSON object keyed by compartment.
func WriteJSON(w io.Writer, series sim.Series) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(series)
}

// WriteCSVFile writes the series into a CSV file, replacing any existing
// file.
func WriteCSVFile(path string, series sim.Series) error {
	return writeFile(path, series, WriteCSV)
}

// WriteJSONFile writes the series into a JSON file, replacing any existing
// file.
func WriteJSONFile(path string, series sim.Series) error {
	return writeFile(path, series, WriteJSON)
}

func writeFile(
	path string,
	series sim.Series,
	write func(io.Writer, sim.Series) error,
) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	err = write(file, series)
	if err != nil {
		file.Close()
		return err
	}

	return file.Close()
}
