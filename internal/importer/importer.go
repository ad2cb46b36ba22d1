// Package importer reads package lists from CSV and Excel files. It
// supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/danuaemx/bin-packing-optimizer/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Packages []model.Package
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// A value of -1 means the column is absent.
type ColumnMapping struct {
	Name        int
	Width       int
	Height      int
	Depth       int
	MinQuantity int
	MaxQuantity int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name":   {"name", "label", "package", "part", "item", "description", "desc"},
	"width":  {"width", "w", "length", "len", "x", "dim1"},
	"height": {"height", "h", "y", "dim2"},
	"depth":  {"depth", "d", "z", "dim3"},
	"min":    {"min", "min qty", "min quantity", "minimum", "min_quantity"},
	"max":    {"max", "max qty", "max quantity", "maximum", "max_quantity", "quantity", "qty", "count"},
}

// DetectCSVDelimiter reads the file content and determines the most likely
// CSV delimiter. It tries comma, semicolon, tab, and pipe. The delimiter
// that produces the most consistent multi-column split across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each
// column role. Returns the mapping and true if a header was detected, or a
// default positional mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Name:        -1,
		Width:       -1,
		Height:      -1,
		Depth:       -1,
		MinQuantity: -1,
		MaxQuantity: -1,
	}

	assign := func(role string, idx int) {
		switch role {
		case "name":
			if mapping.Name == -1 {
				mapping.Name = idx
			}
		case "width":
			if mapping.Width == -1 {
				mapping.Width = idx
			}
		case "height":
			if mapping.Height == -1 {
				mapping.Height = idx
			}
		case "depth":
			if mapping.Depth == -1 {
				mapping.Depth = idx
			}
		case "min":
			if mapping.MinQuantity == -1 {
				mapping.MinQuantity = idx
			}
		case "max":
			if mapping.MaxQuantity == -1 {
				mapping.MaxQuantity = idx
			}
		}
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					assign(role, i)
				}
			}
		}
	}

	if !isHeader {
		// Positional fallback: name, width, height, depth, min, max.
		return ColumnMapping{
			Name:        0,
			Width:       1,
			Height:      2,
			Depth:       3,
			MinQuantity: 4,
			MaxQuantity: 5,
		}, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a Package from a row using the given column mapping.
// Returns the package, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, packageCount int) (model.Package, string, string) {
	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Package %d", packageCount+1)
	}

	widthStr := getCell(row, mapping.Width)
	if widthStr == "" {
		return model.Package{}, fmt.Sprintf("%s: Missing width value", rowLabel), ""
	}
	width, err := strconv.Atoi(widthStr)
	if err != nil {
		return model.Package{}, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr), ""
	}

	dims := []int{width}
	if heightStr := getCell(row, mapping.Height); heightStr != "" {
		height, err := strconv.Atoi(heightStr)
		if err != nil {
			return model.Package{}, fmt.Sprintf("%s: Invalid height '%s'", rowLabel, heightStr), ""
		}
		dims = append(dims, height)

		if depthStr := getCell(row, mapping.Depth); depthStr != "" {
			depth, err := strconv.Atoi(depthStr)
			if err != nil {
				return model.Package{}, fmt.Sprintf("%s: Invalid depth '%s'", rowLabel, depthStr), ""
			}
			dims = append(dims, depth)
		}
	}

	minQty := 0
	var warning string
	if minStr := getCell(row, mapping.MinQuantity); minStr != "" {
		minQty, err = strconv.Atoi(minStr)
		if err != nil {
			return model.Package{}, fmt.Sprintf("%s: Invalid minimum quantity '%s'", rowLabel, minStr), ""
		}
	} else {
		warning = fmt.Sprintf("%s: No minimum quantity, defaulting to 0", rowLabel)
	}

	maxStr := getCell(row, mapping.MaxQuantity)
	if maxStr == "" {
		return model.Package{}, fmt.Sprintf("%s: Missing maximum quantity value", rowLabel), ""
	}
	maxQty, err := strconv.Atoi(maxStr)
	if err != nil {
		return model.Package{}, fmt.Sprintf("%s: Invalid maximum quantity '%s'", rowLabel, maxStr), ""
	}

	for _, d := range dims {
		if d <= 0 {
			return model.Package{}, fmt.Sprintf("%s: Dimensions must be positive", rowLabel), ""
		}
	}
	if maxQty <= 0 || minQty < 0 || minQty > maxQty {
		return model.Package{}, fmt.Sprintf("%s: Quantities must satisfy 0 <= min <= max with max > 0", rowLabel), ""
	}

	return model.NewPackage(name, dims, minQty, maxQty), "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports packages from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports packages from a CSV reader with a specific
// delimiter. Useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports packages from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into packages.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.MaxQuantity == -1 {
			missing = append(missing, "Max quantity")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// No recognized header: if the first row is not numeric past the name
		// column, skip it as an unrecognized header and keep positional mapping.
		if _, err := strconv.Atoi(strings.TrimSpace(rows[0][1])); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		pkg, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Packages))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Packages = append(result.Packages, pkg)
	}

	return result
}
