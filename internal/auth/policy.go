package auth

type Action string

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionDelete Action = "delete"
)

// Owned diimplementasikan oleh setiap entity yang kepemilikannya bisa
// ditelusuri ke satu user lewat rantai parent-nya.
type Owned interface {
	TransitiveOwnerID() int
}

// CanAccess memutuskan apakah subject boleh melakukan action pada resource.
// Aturannya satu: pemilik transitif harus sama dengan subject. Role admin
// tidak mem-bypass aturan ini.
func CanAccess(subjectID int, resource Owned, action Action) bool {
	switch action {
	case ActionRead, ActionWrite, ActionDelete:
		return resource.TransitiveOwnerID() == subjectID
	default:
		return false
	}
}
