package resource

type Type string

const (
	TypeStudyRoom       Type = "study_room"
	TypeLabEquipment    Type = "lab_equipment"
	TypeSportsFacility  Type = "sports_facility"
	TypeConferenceRoom  Type = "conference_room"
	TypeLibraryResource Type = "library_resource"
	TypeOther           Type = "other"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeStudyRoom, TypeLabEquipment, TypeSportsFacility,
		TypeConferenceRoom, TypeLibraryResource, TypeOther:
		return true
	default:
		return false
	}
}

// RequiresCapacity reports whether resources of this type must declare
// a seat capacity.
func (t Type) RequiresCapacity() bool {
	switch t {
	case TypeStudyRoom, TypeConferenceRoom, TypeSportsFacility:
		return true
	default:
		return false
	}
}
