package handler

import "context"

// Error keys reported by Guard.
const (
	KeyIDExists   = "idexists"
	KeyIDNull     = "idnull"
	KeyIDInvalid  = "idinvalid"
	KeyIDNotFound = "idnotfound"
)

// ExistsFunc reports whether the record with id is stored.
type ExistsFunc func(ctx context.Context, id int64) (bool, error)

// Guard runs the identifier preconditions of mutating requests for one entity kind.
type Guard struct {
	EntityName string
}

// CheckCreate rejects a create payload that already carries an id.
func (g Guard) CheckCreate(bodyID *int64) error {
	if bodyID != nil {
		return NewBadRequestAlert("A new "+g.EntityName+" cannot already have an ID", g.EntityName, KeyIDExists)
	}
	return nil
}

// CheckIdentity requires the body id to be present and equal to the path id.
func (g Guard) CheckIdentity(pathID int64, bodyID *int64) error {
	if bodyID == nil {
		return NewBadRequestAlert("Invalid id", g.EntityName, KeyIDNull)
	}
	if *bodyID != pathID {
		return NewBadRequestAlert("Invalid ID", g.EntityName, KeyIDInvalid)
	}
	return nil
}

// CheckExists requires the record to be stored. Store errors are returned as is.
func (g Guard) CheckExists(ctx context.Context, id int64, exists ExistsFunc) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return NewBadRequestAlert("Entity not found", g.EntityName, KeyIDNotFound)
	}
	return nil
}
