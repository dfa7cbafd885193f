package skill

import "context"

type Repository interface {
	List(ctx context.Context) ([]Skill, error)
}
