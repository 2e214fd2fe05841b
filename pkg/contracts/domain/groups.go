package domain

// EducationMapping groups the raw education labels of the census data into
// the smaller set of display groups.
var EducationMapping = map[string]string{
	"Preschool":    EducationPreschool,
	"1st-4th":      EducationPrimary,
	"5th-6th":      EducationPrimary,
	"7th-8th":      EducationPrimary,
	"9th":          EducationSecondary,
	"10th":         EducationSecondary,
	"11th":         EducationSecondary,
	"12th":         EducationSecondary,
	"HS-grad":      EducationHSGraduate,
	"Some-college": EducationSomeCollege,
	"Assoc-acdm":   EducationAssociate,
	"Assoc-voc":    EducationAssociate,
	"Bachelors":    EducationBachelors,
	"Masters":      EducationMasters,
	"Prof-school":  EducationProfSchool,
	"Doctorate":    EducationDoctorate,
}

// Education group labels.
const (
	EducationPreschool   = "Preschool"
	EducationPrimary     = "1st-8th Grade"
	EducationSecondary   = "9th-12th Grade"
	EducationHSGraduate  = "HS Graduate"
	EducationSomeCollege = "Some College"
	EducationAssociate   = "Associate"
	EducationBachelors   = "Bachelors"
	EducationMasters     = "Masters"
	EducationProfSchool  = "Prof. School"
	EducationDoctorate   = "Doctorate"
)

// EducationGroupOrder returns the display order of the education groups.
func EducationGroupOrder() []string {
	return []string{
		EducationPreschool,
		EducationPrimary,
		EducationSecondary,
		EducationHSGraduate,
		EducationSomeCollege,
		EducationAssociate,
		EducationBachelors,
		EducationMasters,
		EducationProfSchool,
		EducationDoctorate,
	}
}

// GroupEducation looks up the display group of a raw education label.
func GroupEducation(raw string) (string, bool) {
	g, ok := EducationMapping[raw]
	return g, ok
}

// AgeBin is a right-open interval [Lower, Upper) with its display label.
type AgeBin struct {
	Lower int
	Upper int
	Label string
}

// Contains reports whether age falls inside [Lower, Upper).
func (b AgeBin) Contains(age int) bool {
	return age >= b.Lower && age < b.Upper
}

// AgeBinEdges are the bin boundaries; consecutive pairs form the bins.
var AgeBinEdges = []int{17, 20, 30, 40, 50, 60, 70, 80, 90}

// AgeBinLabels label the bins built from AgeBinEdges, in order.
var AgeBinLabels = []string{"17-20", "21-30", "31-40", "41-50", "51-60", "61-70", "71-80", "81-90"}

// AgeBins returns the age bins built from AgeBinEdges and AgeBinLabels.
func AgeBins() []AgeBin {
	bins := make([]AgeBin, 0, len(AgeBinLabels))
	for i, label := range AgeBinLabels {
		bins = append(bins, AgeBin{Lower: AgeBinEdges[i], Upper: AgeBinEdges[i+1], Label: label})
	}
	return bins
}

// AgeBinLabel returns the label of the first bin holding age. Ages outside
// [17, 90) have no bin.
func AgeBinLabel(age int) (string, bool) {
	for _, b := range AgeBins() {
		if b.Contains(age) {
			return b.Label, true
		}
	}
	return "", false
}
