package export

import (
	"archive/zip"
	"fmt"
	"io"
	"sort"

	"github.com/tsawler/examine/internal/json"
	"github.com/tsawler/examine/question"
)

// WriteZip packages a question set as a zip archive with one folder
// per question:
//
//	question_<number-or-index>/question.json
//	question_<number-or-index>/images/<synthetic filename>
//
// Unnumbered questions fall back to their 1-based position in the set
// so folder names stay unique.
func WriteZip(w io.Writer, set *question.Set) error {
	zw := zip.NewWriter(w)

	for i := range set.Questions {
		rec := &set.Questions[i]

		id := i + 1
		if rec.Number != nil {
			id = *rec.Number
		}
		folder := fmt.Sprintf("question_%d", id)

		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			zw.Close()
			return fmt.Errorf("encoding %s: %w", folder, err)
		}
		f, err := zw.Create(folder + "/question.json")
		if err != nil {
			zw.Close()
			return err
		}
		if _, err := f.Write(data); err != nil {
			zw.Close()
			return err
		}

		// Image iteration is sorted so archives are reproducible.
		names := make([]string, 0, len(rec.Images))
		for name := range rec.Images {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			f, err := zw.Create(folder + "/images/" + name)
			if err != nil {
				zw.Close()
				return err
			}
			if _, err := f.Write(rec.Images[name]); err != nil {
				zw.Close()
				return err
			}
		}
	}

	return zw.Close()
}
