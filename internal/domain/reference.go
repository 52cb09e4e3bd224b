package domain

import "encoding/json"

// Reference points at another entity by id and may carry the resolved entity.
// Resolution only happens at the read boundary; writes work with ids alone.
type Reference[T any] struct {
	id     int32
	entity *T
}

// Unresolved builds a reference that only knows the id
func Unresolved[T any](id int32) Reference[T] {
	return Reference[T]{id: id}
}

// Resolved builds a reference carrying the entity. A nil entity yields an unresolved reference.
func Resolved[T any](id int32, entity *T) Reference[T] {
	return Reference[T]{id: id, entity: entity}
}

func (r Reference[T]) ID() int32 {
	return r.id
}

// Entity returns the resolved entity, if any
func (r Reference[T]) Entity() (*T, bool) {
	return r.entity, r.entity != nil
}

func (r Reference[T]) IsResolved() bool {
	return r.entity != nil
}

// MarshalJSON renders the entity when resolved and the bare id otherwise
func (r Reference[T]) MarshalJSON() ([]byte, error) {
	if r.entity != nil {
		return json.Marshal(r.entity)
	}
	return json.Marshal(r.id)
}

// UnmarshalJSON accepts either form written by MarshalJSON
func (r *Reference[T]) UnmarshalJSON(data []byte) error {
	var id int32
	if err := json.Unmarshal(data, &id); err == nil {
		*r = Unresolved[T](id)
		return nil
	}

	var withID struct {
		ID int32 `json:"id"`
	}
	if err := json.Unmarshal(data, &withID); err != nil {
		return err
	}
	entity := new(T)
	if err := json.Unmarshal(data, entity); err != nil {
		return err
	}
	*r = Resolved(withID.ID, entity)
	return nil
}
