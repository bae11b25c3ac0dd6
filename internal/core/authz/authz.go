// Package authz decides whether a caller may run an operation.
//
// Decide is a pure function over a read-only rule table. Policy wraps it with
// the single store read a rule may need: the target's owning user. Operations
// without a rule are denied.
package authz

import (
	"context"
	"fmt"

	"github.com/inkpost/blog-api/internal/core/domain"
)

// Operation names one query or mutation of the API.
type Operation string

const (
	OpFeed           Operation = "feed"
	OpAllUsers       Operation = "allUsers"
	OpMe             Operation = "me"
	OpPostByID       Operation = "postById"
	OpDraftsByUser   Operation = "draftsByUser"
	OpCreateDraft    Operation = "createDraft"
	OpTogglePublish  Operation = "togglePublishPost"
	OpIncrementViews Operation = "incrementPostViewCount"
	OpDeletePost     Operation = "deletePost"
	OpCreateProfile  Operation = "createProfile"
	OpUpdateProfile  Operation = "updateProfile"
)

// Kind is the type of resource an operation targets.
type Kind string

const (
	KindNone    Kind = ""
	KindUser    Kind = "user"
	KindPost    Kind = "post"
	KindProfile Kind = "profile"
)

// Ref addresses a target before it is loaded. Email is only meaningful for
// KindUser and is used when ID is zero.
type Ref struct {
	ID    int64
	Email string
}

// Target is what the evaluator knows about the resource: whether it exists,
// who owns it and, for posts, whether it is public.
type Target struct {
	Kind      Kind
	ID        int64
	Found     bool
	OwnerID   int64
	Published bool
}

// Decision is the outcome of Decide. Reason is nil when Allowed.
type Decision struct {
	Allowed bool
	Reason  error
}

// Err returns nil for an allow and the deny reason otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return d.Reason
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason error) Decision { return Decision{Reason: reason} }

type rule struct {
	kind  Kind
	check func(t Target, ac domain.AuthContext) Decision
}

// rules is built once and only read afterwards.
var rules = map[Operation]rule{
	OpFeed:           {kind: KindNone, check: public},
	OpAllUsers:       {kind: KindNone, check: public},
	OpMe:             {kind: KindNone, check: authenticated},
	OpCreateDraft:    {kind: KindNone, check: authenticated},
	OpCreateProfile:  {kind: KindNone, check: authenticated},
	OpPostByID:       {kind: KindPost, check: visiblePost},
	OpIncrementViews: {kind: KindPost, check: visiblePost},
	OpDraftsByUser:   {kind: KindUser, check: owner},
	OpTogglePublish:  {kind: KindPost, check: owner},
	OpDeletePost:     {kind: KindPost, check: owner},
	OpUpdateProfile:  {kind: KindProfile, check: owner},
}

// TargetKind returns the resource type op needs loaded, and false when op has
// no rule.
func TargetKind(op Operation) (Kind, bool) {
	r, ok := rules[op]
	return r.kind, ok
}

// Decide evaluates op against target for the caller ac.
func Decide(op Operation, target Target, ac domain.AuthContext) Decision {
	r, ok := rules[op]
	if !ok {
		return deny(fmt.Errorf("%w: no rule for %s", domain.ErrPermissionDenied, op))
	}
	if r.kind != KindNone && target.Kind != r.kind {
		return deny(fmt.Errorf("%w: %s expects a %s target", domain.ErrPermissionDenied, op, r.kind))
	}
	return r.check(target, ac)
}

func public(Target, domain.AuthContext) Decision {
	return allow()
}

func authenticated(_ Target, ac domain.AuthContext) Decision {
	if !ac.Authenticated {
		return deny(fmt.Errorf("%w: please log in and try again", domain.ErrUnauthenticated))
	}
	return allow()
}

// owner checks identity before existence so anonymous callers cannot probe ids.
func owner(t Target, ac domain.AuthContext) Decision {
	if d := authenticated(t, ac); !d.Allowed {
		return d
	}
	if !t.Found {
		return deny(notFound(t))
	}
	if !ac.IsOwner(t.OwnerID) {
		return deny(fmt.Errorf("%w: %s %d belongs to another user", domain.ErrPermissionDenied, t.Kind, t.ID))
	}
	return allow()
}

// visiblePost lets anyone see published posts; drafts are visible to their
// author only and look missing to everyone else.
func visiblePost(t Target, ac domain.AuthContext) Decision {
	if !t.Found || (!t.Published && !ac.IsOwner(t.OwnerID)) {
		return deny(notFound(t))
	}
	return allow()
}

func notFound(t Target) error {
	if t.ID == 0 {
		return fmt.Errorf("%w: %s does not exist", domain.ErrNotFound, t.Kind)
	}
	return fmt.Errorf("%w: %s with id %d does not exist", domain.ErrNotFound, t.Kind, t.ID)
}

// TargetLoader fetches ownership facts from the store. Implementations must
// not modify state and report a missing resource as Target{Found: false}.
type TargetLoader interface {
	LoadTarget(ctx context.Context, kind Kind, ref Ref) (Target, error)
}

// Policy runs Decide after loading the target the rule needs.
type Policy struct {
	loader TargetLoader
}

// NewPolicy returns a Policy reading targets through loader.
func NewPolicy(loader TargetLoader) *Policy {
	return &Policy{loader: loader}
}

// Authorize returns the loaded target and a nil error when ac may run op on
// ref. Otherwise the error is the deny reason, or the store error if the
// target could not be loaded.
func (p *Policy) Authorize(ctx context.Context, op Operation, ref Ref, ac domain.AuthContext) (Target, error) {
	kind, ok := TargetKind(op)
	if !ok {
		return Target{}, Decide(op, Target{}, ac).Err()
	}

	target := Target{Kind: kind, ID: ref.ID}
	if kind != KindNone {
		loaded, err := p.loader.LoadTarget(ctx, kind, ref)
		if err != nil {
			return Target{}, fmt.Errorf("authorize %s: %w", op, err)
		}
		target = loaded
	}

	return target, Decide(op, target, ac).Err()
}
