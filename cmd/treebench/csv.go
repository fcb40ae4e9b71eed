package main

import (
	"encoding/csv"
	"io"
	"strconv"
)

// sizeResult is one row of the benchmark CSV: the average wall-clock
// seconds per operation at a given tree size.
type sizeResult struct {
	treeSize   int
	insertTime float64
	findTime   float64
	eraseTime  float64
}

func writeCSV(w io.Writer, results []sizeResult) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"tree_size", "insert_time", "find_time", "erase_time"}); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			strconv.Itoa(r.treeSize),
			strconv.FormatFloat(r.insertTime, 'g', -1, 64),
			strconv.FormatFloat(r.findTime, 'g', -1, 64),
			strconv.FormatFloat(r.eraseTime, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}
