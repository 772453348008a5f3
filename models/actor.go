package models

// Actor -> identitas request yang sudah diresolve sekali di middleware
// session, lalu dioper eksplisit ke service. Handler tidak perlu query
// role lagi per endpoint.
type Actor struct {
	UserID     uint   `json:"user_id"`
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	GroupID    uint   `json:"group_id"`

	// Diisi hanya jika user memegang capability record terkait.
	GroupDirectorID   uint `json:"group_director_id,omitempty"`
	DirectedGroupID   uint `json:"directed_group_id,omitempty"`
	FacilityManagerID uint `json:"facility_manager_id,omitempty"`
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

func (a Actor) IsGroupDirector() bool { return a.GroupDirectorID != 0 }

func (a Actor) IsFacilityManager() bool { return a.FacilityManagerID != 0 }

// ActorFromUser membangun Actor dari user yang sudah dipreload
// capability recordnya.
func ActorFromUser(u *User) Actor {
	actor := Actor{
		UserID:     u.ID,
		EmployeeID: u.EmployeeID,
		Name:       u.Name,
		Role:       u.Role,
		GroupID:    u.GroupID,
	}
	if u.GroupDirector != nil {
		actor.GroupDirectorID = u.GroupDirector.ID
		actor.DirectedGroupID = u.GroupDirector.GroupID
	}
	if u.FacilityManager != nil {
		actor.FacilityManagerID = u.FacilityManager.ID
	}
	return actor
}
