package models

import "strings"

// Realm is the top-level category of a task.
type Realm string

const (
	RealmAuto      Realm = "Auto"
	RealmClothing  Realm = "Clothing"
	RealmCollege   Realm = "College"
	RealmComputer  Realm = "Computer"
	RealmComputing Realm = "Computing"
	RealmFinance   Realm = "Finance"
	RealmGifts     Realm = "Gifts"
	RealmHealth    Realm = "Health"
	RealmHome      Realm = "Home"
	RealmLearning  Realm = "Learning"
	RealmMisc      Realm = "Misc"
	RealmSchool    Realm = "School"
	RealmSports    Realm = "Sports"
)

// Realms lists the fixed realm taxonomy in form order.
var Realms = []Realm{
	RealmAuto, RealmClothing, RealmCollege, RealmComputer, RealmComputing,
	RealmFinance, RealmGifts, RealmHealth, RealmHome, RealmLearning,
	RealmMisc, RealmSchool, RealmSports,
}

func (r Realm) Valid() bool {
	for _, known := range Realms {
		if r == known {
			return true
		}
	}
	return false
}

// TaskType distinguishes recurring chores, one-off tasks and expenses.
type TaskType string

const (
	TypeChore   TaskType = "Chore"
	TypeTask    TaskType = "Task"
	TypeExpense TaskType = "Expense"
)

var TaskTypes = []TaskType{TypeChore, TypeTask, TypeExpense}

func (t TaskType) Valid() bool {
	for _, known := range TaskTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Assignees outside the configured household roster.
const (
	AssigneeAll   = "All"
	AssigneeOther = "Other"
)

// HomeRooms is the allowed subrealm set for the Home realm.
var HomeRooms = []string{
	"Kitchen", "Bathroom", "Bedroom", "Living Room",
	"Office", "Garage", "Basement", "Yard",
}

// SubrealmsByRealm maps realms to their allowed subrealm sets. Realms without
// an entry accept free text.
var SubrealmsByRealm = map[Realm][]string{
	RealmHome: HomeRooms,
}

// AllowedSubrealm reports whether sub is acceptable for the realm. Blank
// subrealms are always allowed.
func AllowedSubrealm(realm Realm, sub string) bool {
	if sub == "" {
		return true
	}
	allowed, constrained := SubrealmsByRealm[realm]
	if !constrained {
		return true
	}
	for _, a := range allowed {
		if strings.EqualFold(a, sub) {
			return true
		}
	}
	return false
}

// ValidAssignee reports whether name is a roster member, "All" or "Other".
func ValidAssignee(roster []string, name string) bool {
	if strings.EqualFold(name, AssigneeAll) || strings.EqualFold(name, AssigneeOther) {
		return true
	}
	for _, member := range roster {
		if strings.EqualFold(member, name) {
			return true
		}
	}
	return false
}
