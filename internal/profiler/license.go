package profiler

import (
	"sort"

	"github.com/go-enry/go-license-detector/v4/licensedb"
	"github.com/go-enry/go-license-detector/v4/licensedb/filer"
	"github.com/petrarca/stack-advisor/internal/types"
)

// licenseConfidenceFloor filters out speculative matches.
const licenseConfidenceFloor = 0.9

// detectLicenses detects licenses from LICENSE files under the project
// root. Detection works on the real filesystem only; a root the license
// filer cannot open simply yields no licenses.
func detectLicenses(root string) []types.License {
	fs, err := filer.FromDirectory(root)
	if err != nil {
		return nil
	}

	matches, err := licensedb.Detect(fs)
	if err != nil {
		return nil
	}

	var licenses []types.License
	for licenseID, match := range matches {
		if match.Confidence > licenseConfidenceFloor {
			licenses = append(licenses, types.License{
				Name:       licenseID,
				Confidence: match.Confidence,
				SourceFile: match.File,
			})
		}
	}

	sort.Slice(licenses, func(i, j int) bool {
		if licenses[i].Confidence != licenses[j].Confidence {
			return licenses[i].Confidence > licenses[j].Confidence
		}
		return licenses[i].Name < licenses[j].Name
	})
	return licenses
}
