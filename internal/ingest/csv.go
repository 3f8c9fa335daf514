// Package ingest implements the CSV ingestion contract of SPEC_FULL.md
// §6: four files discovered by filename substring, each with a header
// row, populating a fresh network.Network.
package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"waternet/internal/apperror"
	"waternet/internal/network"
)

const (
	categoryReservoir = "Reservoir"
	categoryStation   = "Stations"
	categoryCity      = "Cities"
	categoryPipe      = "Pipes"
)

// FromDirectory discovers the four CSV files in dir by filename
// substring and builds a network from them. A missing or duplicated
// category is a fatal ingestion error that leaves no graph built.
func FromDirectory(dir string) (*network.Network, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeIngestion, "reading input directory", err)
	}

	categories := map[string]string{}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		name := f.Name()
		for _, cat := range []string{categoryReservoir, categoryStation, categoryCity, categoryPipe} {
			if strings.Contains(name, cat) {
				if existing, dup := categories[cat]; dup {
					return nil, apperror.New(apperror.CodeIngestion,
						fmt.Sprintf("duplicate %s files: %s and %s", cat, existing, name))
				}
				categories[cat] = filepath.Join(dir, name)
			}
		}
	}
	for _, cat := range []string{categoryReservoir, categoryStation, categoryCity, categoryPipe} {
		if _, ok := categories[cat]; !ok {
			return nil, apperror.New(apperror.CodeIngestion, fmt.Sprintf("missing %s file", cat))
		}
	}

	n := network.New()

	if err := loadReservoirs(n, categories[categoryReservoir]); err != nil {
		return nil, err
	}
	if err := loadStations(n, categories[categoryStation]); err != nil {
		return nil, err
	}
	if err := loadCities(n, categories[categoryCity]); err != nil {
		return nil, err
	}
	if err := loadPipes(n, categories[categoryPipe]); err != nil {
		return nil, err
	}
	return n, nil
}

func readRecords(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeIngestion, "opening "+path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeIngestion, "parsing "+path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[1:], nil // skip header row
}

func trimCR(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), "\r")
}

func loadReservoirs(n *network.Network, path string) error {
	records, err := readRecords(path)
	if err != nil {
		return err
	}
	for _, row := range records {
		if len(row) < 5 {
			continue
		}
		code := trimCR(row[3])
		if code == "" {
			continue
		}
		maxDelivery, err := strconv.ParseFloat(trimCR(row[4]), 64)
		if err != nil {
			return apperror.Wrap(apperror.CodeIngestion, "invalid reservoir max_delivery for "+code, err)
		}
		if !n.AddVertex(code, network.KindReservoir) {
			return apperror.NewWithField(apperror.CodeIngestion, "duplicate vertex code "+code, "code")
		}
		v, _ := n.FindVertex(code)
		v.MaxDelivery = maxDelivery
	}
	return nil
}

func loadStations(n *network.Network, path string) error {
	records, err := readRecords(path)
	if err != nil {
		return err
	}
	for _, row := range records {
		if len(row) < 2 {
			continue
		}
		code := trimCR(row[1])
		if code == "" {
			continue
		}
		if !n.AddVertex(code, network.KindPumpingStation) {
			return apperror.NewWithField(apperror.CodeIngestion, "duplicate vertex code "+code, "code")
		}
	}
	return nil
}

func loadCities(n *network.Network, path string) error {
	records, err := readRecords(path)
	if err != nil {
		return err
	}
	for _, row := range records {
		if len(row) < 5 {
			continue
		}
		code := trimCR(row[2])
		if code == "" {
			continue
		}
		demand, err := strconv.ParseFloat(trimCR(row[3]), 64)
		if err != nil {
			return apperror.Wrap(apperror.CodeIngestion, "invalid city demand for "+code, err)
		}
		if !n.AddVertex(code, network.KindCity) {
			return apperror.NewWithField(apperror.CodeIngestion, "duplicate vertex code "+code, "code")
		}
		v, _ := n.FindVertex(code)
		v.Demand = demand
	}
	return nil
}

func loadPipes(n *network.Network, path string) error {
	records, err := readRecords(path)
	if err != nil {
		return err
	}
	for _, row := range records {
		if len(row) < 4 {
			continue
		}
		a := trimCR(row[0])
		b := trimCR(row[1])
		if a == "" || b == "" {
			continue
		}
		capacity, err := strconv.ParseFloat(trimCR(row[2]), 64)
		if err != nil {
			return apperror.Wrap(apperror.CodeIngestion, fmt.Sprintf("invalid pipe capacity for %s-%s", a, b), err)
		}
		direction, err := strconv.Atoi(trimCR(row[3]))
		if err != nil {
			return apperror.Wrap(apperror.CodeIngestion, fmt.Sprintf("invalid pipe direction for %s-%s", a, b), err)
		}
		unidirectional := direction == 1
		if !n.AddPipe(a, b, capacity, unidirectional) {
			return apperror.New(apperror.CodeIngestion, fmt.Sprintf("pipe references unknown service point: %s-%s", a, b))
		}
	}
	return nil
}
