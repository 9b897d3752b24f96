package models

// DirectoryEntry is a partner record from the external partner directory
// (the commercials collection). It is read-only for this service.
type DirectoryEntry struct {
	PartnerID string `bson:"partnerId" json:"partnerId"`
	FirstName string `bson:"prenom" json:"prenom"`
	LastName  string `bson:"nom" json:"nom"`
	Email     string `bson:"email" json:"email"`
	Phone     string `bson:"telephone" json:"telephone"`
	// Active is nil for directory records predating the flag; those count as active.
	Active *bool `bson:"active,omitempty" json:"active,omitempty"`
}

func (d DirectoryEntry) IsActive() bool {
	return d.Active == nil || *d.Active
}

// FullName joins first and last name.
func (d DirectoryEntry) FullName() string {
	switch {
	case d.FirstName == "":
		return d.LastName
	case d.LastName == "":
		return d.FirstName
	}
	return d.FirstName + " " + d.LastName
}
