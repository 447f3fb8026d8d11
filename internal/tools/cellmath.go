package tools

import "github.com/xuri/excelize/v2"

// offsetCell shifts an A1-style reference right and down.
func offsetCell(cell string, dcol, drow int) (string, bool) {
	col, row, err := excelize.CellNameToCoordinates(cell)
	if err != nil {
		return "", false
	}
	out, err := excelize.CoordinatesToCellName(col+dcol, row+drow)
	if err != nil {
		return "", false
	}
	return out, true
}
