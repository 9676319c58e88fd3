package entity

// NGO is an entry in the static donation directory shown on the
// donate-book form. The listing created for a donation stores the
// NGO's location string.
type NGO struct {
	Name     string
	Location string
}

// NGODirectory is the static list of NGOs and schools accepting donations.
var NGODirectory = []NGO{
	{Name: "Hope Foundation", Location: "Sector 62, Noida"},
	{Name: "Goonj NGO", Location: "Sector 15, Noida"},
	{Name: "Govt. Primary School", Location: "Sector 50, Noida"},
	{Name: "Smile India Foundation", Location: "Sector 45, Noida"},
}

// FindNGO looks up a directory entry by name. It returns nil when the
// submitted name is not in the directory.
func FindNGO(name string) *NGO {
	for i := range NGODirectory {
		if NGODirectory[i].Name == name {
			return &NGODirectory[i]
		}
	}
	return nil
}
