package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CensusNames is a trimmed attribute description in the adult.names layout:
// comment lines start with "|", the class line holds ">".
const CensusNames = `| This data was extracted from the census bureau database.
| Prediction task is to determine whether a person makes over 50K a year.

>50K, <=50K.

age: continuous.
workclass: Private, Self-emp-not-inc, Self-emp-inc, Federal-gov, Local-gov, State-gov, Without-pay, Never-worked.
fnlwgt: continuous.
education: Bachelors, Some-college, 11th, HS-grad, Prof-school, Assoc-acdm, Assoc-voc, 9th, 7th-8th, 12th, Masters, 1st-4th, 10th, Doctorate, 5th-6th, Preschool.
education-num: continuous.
marital-status: Married-civ-spouse, Divorced, Never-married, Separated, Widowed, Married-spouse-absent, Married-AF-spouse.
occupation: Tech-support, Craft-repair, Other-service, Sales, Exec-managerial, Prof-specialty, Handlers-cleaners, Machine-op-inspct, Adm-clerical, Farming-fishing, Transport-moving, Priv-house-serv, Protective-serv, Armed-Forces.
relationship: Wife, Own-child, Husband, Not-in-family, Other-relative, Unmarried.
race: White, Asian-Pac-Islander, Amer-Indian-Eskimo, Other, Black.
sex: Female, Male.
capital-gain: continuous.
capital-loss: continuous.
hours-per-week: continuous.
native-country: United-States, Cambodia, England, Puerto-Rico, Canada, Germany, Mexico, ?.
`

// CensusColumns is the catalogue CensusNames yields, income included.
var CensusColumns = []string{
	"age", "workclass", "fnlwgt", "education", "education-num",
	"marital-status", "occupation", "relationship", "race", "sex",
	"capital-gain", "capital-loss", "hours-per-week", "native-country", "income",
}

// CensusRecords are data lines in the adult.data layout, a space after every
// comma. One row carries "?" sentinels, one is aged 90.
var CensusRecords = []string{
	"39, State-gov, 77516, Bachelors, 13, Never-married, Adm-clerical, Not-in-family, White, Male, 2174, 0, 40, United-States, <=50K",
	"50, Self-emp-not-inc, 83311, Bachelors, 13, Married-civ-spouse, Exec-managerial, Husband, White, Male, 0, 0, 13, United-States, <=50K",
	"38, Private, 215646, HS-grad, 9, Divorced, Handlers-cleaners, Not-in-family, White, Male, 0, 0, 40, United-States, <=50K",
	"53, Private, 234721, 11th, 7, Married-civ-spouse, Handlers-cleaners, Husband, Black, Male, 0, 0, 40, United-States, <=50K",
	"31, Private, 45781, Masters, 14, Never-married, Prof-specialty, Not-in-family, White, Female, 14084, 0, 50, United-States, >50K",
	"42, Private, 159449, Bachelors, 13, Married-civ-spouse, Exec-managerial, Husband, White, Male, 5178, 0, 40, United-States, >50K",
	"54, ?, 180211, Some-college, 10, Married-civ-spouse, ?, Husband, Asian-Pac-Islander, Male, 0, 0, 60, ?, >50K",
	"17, Private, 101626, 9th, 5, Never-married, Other-service, Own-child, White, Male, 0, 0, 20, Mexico, <=50K",
	"90, Private, 51744, Doctorate, 16, Never-married, Prof-specialty, Not-in-family, Black, Male, 0, 2206, 40, United-States, >50K",
	"23, Local-gov, 190709, Assoc-acdm, 12, Never-married, Protective-serv, Not-in-family, White, Male, 0, 0, 52, United-States, <=50K",
}

// CensusData joins CensusRecords into file content.
func CensusData() string {
	return strings.Join(CensusRecords, "\n") + "\n"
}

// CensusFiles are the paths of a fixture written to disk.
type CensusFiles struct {
	Dir       string
	NamesFile string
	DataFile  string
}

// WriteCensusFixtures writes CensusNames and CensusData into a fresh
// temporary directory.
func WriteCensusFixtures(t *testing.T) CensusFiles {
	t.Helper()

	dir := t.TempDir()
	files := CensusFiles{
		Dir:       dir,
		NamesFile: filepath.Join(dir, "adult.names.txt"),
		DataFile:  filepath.Join(dir, "adult.data.txt"),
	}
	if err := os.WriteFile(files.NamesFile, []byte(CensusNames), 0644); err != nil {
		t.Fatalf("write names fixture: %v", err)
	}
	if err := os.WriteFile(files.DataFile, []byte(CensusData()), 0644); err != nil {
		t.Fatalf("write data fixture: %v", err)
	}
	return files
}
