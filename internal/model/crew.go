package model

// Crew is a member of train staff.  Crew members are assigned to
// journeys through the `journey_crew` join table (many-to-many).
//
// Fields:
//  ID        – primary key identifier.
//  FirstName – given name.
//  LastName  – family name.
type Crew struct {
    ID        uint64 `json:"id"`         // crews.id
    FirstName string `json:"first_name"` // crews.first_name
    LastName  string `json:"last_name"`  // crews.last_name
}

// FullName joins first and last name for display.
func (c Crew) FullName() string {
    return c.FirstName + " " + c.LastName
}
