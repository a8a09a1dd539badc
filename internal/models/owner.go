package models

// TransitiveOwnerID pada setiap entity mengembalikan pemilik yang dicapai
// lewat rantai parent sampai root (workspace/project). Untuk entity bersarang,
// nilainya diisi oleh repository saat memvalidasi rantai parent.

func (w Workspace) TransitiveOwnerID() int { return w.OwnerID }

func (b Board) TransitiveOwnerID() int { return b.OwnerID }

func (l List) TransitiveOwnerID() int { return l.OwnerID }

func (c Card) TransitiveOwnerID() int { return c.OwnerID }

func (p Project) TransitiveOwnerID() int { return p.OwnerID }

// Task.assigned_to tidak pernah dipakai di sini; kepemilikan task selalu
// mengikuti pemilik project-nya.
func (t Task) TransitiveOwnerID() int { return t.OwnerID }
