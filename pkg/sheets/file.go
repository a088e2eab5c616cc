package sheets

import (
	"context"
	"fmt"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// FileSource reads xlsx exports from a directory, one file per spreadsheet
// named "<spreadsheet id>.xlsx".
type FileSource struct {
	Dir string
}

func (s *FileSource) Path(ref Ref) string {
	return filepath.Join(s.Dir, ref.SpreadsheetID+".xlsx")
}

func (s *FileSource) Fetch(ctx context.Context, ref Ref) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := s.Path(ref)
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetName := ref.TabName
	if sheetName == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, fmt.Errorf("%w: %s has no sheets", ErrTabNotFound, path)
		}
		sheetName = list[0]
	}
	if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %s in %s", ErrTabNotFound, sheetName, path)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"file": path, "sheet": sheetName, "rows": len(rows)}).Debug("read xlsx export")
	return NewTable(rows), nil
}
