//go:build !solution

package library

import "container/list"

// Role tells readers and writers apart.
type Role int

const (
	RoleReader Role = iota
	RoleWriter
)

func (r Role) String() string {
	switch r {
	case RoleReader:
		return "reader"
	case RoleWriter:
		return "writer"
	default:
		return "unknown"
	}
}

// member представляет участника в наборе
type member struct {
	id   string
	role Role
}

// roster is an insertion-ordered set of actor ids with O(1) add and remove.
type roster struct {
	index map[string]*list.Element // id -> элемент списка
	order *list.List               // порядок добавления
	roles [2]int                   // количество участников по ролям
}

func newRoster() *roster {
	return &roster{
		index: make(map[string]*list.Element),
		order: list.New(),
	}
}

// add returns false if id is already present.
func (r *roster) add(id string, role Role) bool {
	if _, ok := r.index[id]; ok {
		return false
	}
	r.index[id] = r.order.PushBack(&member{id: id, role: role})
	r.roles[role]++
	return true
}

func (r *roster) remove(id string) (Role, bool) {
	elem, ok := r.index[id]
	if !ok {
		return 0, false
	}
	m := r.order.Remove(elem).(*member)
	delete(r.index, id)
	r.roles[m.role]--
	return m.role, true
}

func (r *roster) role(id string) (Role, bool) {
	elem, ok := r.index[id]
	if !ok {
		return 0, false
	}
	return elem.Value.(*member).role, true
}

func (r *roster) contains(id string) bool {
	_, ok := r.index[id]
	return ok
}

func (r *roster) len() int {
	return r.order.Len()
}

func (r *roster) count(role Role) int {
	return r.roles[role]
}

// ids returns a copy of the members in insertion order.
func (r *roster) ids() []string {
	out := make([]string, 0, r.order.Len())
	for e := r.order.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(*member).id)
	}
	return out
}
