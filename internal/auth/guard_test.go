package auth

import (
	"testing"

	"github.com/sandro63/musicdb/internal/models"
)

func TestGuard(t *testing.T) {
	member := Identity{Username: "guest", Tier: TierMember}
	owner := Identity{Username: "admin", Tier: TierOwner}

	cases := []struct {
		name string
		id   Identity
		min  Tier
		want models.OutcomeKind
	}{
		{"anonymous may browse public pages", Anonymous, TierAnonymous, models.Success},
		{"anonymous needs authentication for member pages", Anonymous, TierMember, models.AuthenticationRequired},
		{"anonymous needs authentication even for owner pages", Anonymous, TierOwner, models.AuthenticationRequired},
		{"member passes member check", member, TierMember, models.Success},
		{"member is forbidden from owner operations", member, TierOwner, models.Forbidden},
		{"owner passes member check", owner, TierMember, models.Success},
		{"owner passes owner check", owner, TierOwner, models.Success},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := Guard(tc.id, tc.min)
			if out.Kind != tc.want {
				t.Errorf("expected %v, got %v", tc.want, out.Kind)
			}
			if out.Kind != models.Success && out.Message == "" {
				t.Error("expected a user-facing message on denial")
			}
		})
	}
}
