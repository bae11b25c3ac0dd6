package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/inkpost/blog-api/internal/core/authz"
	"github.com/inkpost/blog-api/internal/core/domain"
	"github.com/inkpost/blog-api/internal/core/ports"
)

// storeTargets answers ownership questions for the authz policy with plain
// reads against the store.
type storeTargets struct {
	store ports.Store
}

// NewTargetLoader returns an authz.TargetLoader backed by store.
func NewTargetLoader(store ports.Store) authz.TargetLoader {
	return &storeTargets{store: store}
}

func (t *storeTargets) LoadTarget(ctx context.Context, kind authz.Kind, ref authz.Ref) (authz.Target, error) {
	missing := authz.Target{Kind: kind, ID: ref.ID}

	switch kind {
	case authz.KindPost:
		p, err := t.store.Posts().FindByID(ctx, ref.ID)
		if err != nil {
			return orMissing(missing, err)
		}
		return authz.Target{Kind: kind, ID: p.ID, Found: true, OwnerID: p.AuthorID, Published: p.Published}, nil

	case authz.KindProfile:
		p, err := t.store.Profiles().FindByID(ctx, ref.ID)
		if err != nil {
			return orMissing(missing, err)
		}
		return authz.Target{Kind: kind, ID: p.ID, Found: true, OwnerID: p.UserID}, nil

	case authz.KindUser:
		var (
			u   *domain.User
			err error
		)
		switch {
		case ref.ID != 0:
			u, err = t.store.Users().FindByID(ctx, ref.ID)
		case ref.Email != "":
			u, err = t.store.Users().FindByEmail(ctx, ref.Email)
		default:
			return missing, nil
		}
		if err != nil {
			return orMissing(missing, err)
		}
		return authz.Target{Kind: kind, ID: u.ID, Found: true, OwnerID: u.ID}, nil
	}

	return authz.Target{}, fmt.Errorf("load target: unsupported kind %q", kind)
}

// orMissing turns a not-found lookup into a missing target and passes other
// errors through.
func orMissing(missing authz.Target, err error) (authz.Target, error) {
	if errors.Is(err, domain.ErrNotFound) {
		return missing, nil
	}
	return authz.Target{}, err
}
