package services

import (
	"context"
	"sync"

	"github.com/KhairnarLokesh/hackmate-ai/internal/docstore"
	"github.com/KhairnarLokesh/hackmate-ai/internal/models"
)

// MemberService streams team member profiles. Unlike the single-stream
// subscriptions used elsewhere, the member subscription opens one
// stream per member id and merges updates into an accumulated map.
type MemberService struct {
	store *docstore.Store
}

func NewMemberService(store *docstore.Store) *MemberService {
	return &MemberService{store: store}
}

// GetProfiles fetches the profiles for the given member ids. Members
// with no persisted profile are skipped.
func (s *MemberService) GetProfiles(ctx context.Context, memberIDs []string) []models.UserProfile {
	profiles := make([]models.UserProfile, 0, len(memberIDs))
	for _, id := range memberIDs {
		doc, err := s.store.Get(ctx, models.CollectionUsers, id)
		if err != nil {
			continue
		}
		profiles = append(profiles, models.UserProfileFromDocument(doc))
	}
	return profiles
}

// SubscribeToProjectMembers fans out one document stream per member id
// and re-emits the full accumulated member list on every individual
// update, preserving the member-id order. Members whose profile
// documents are absent are omitted from the snapshot.
func (s *MemberService) SubscribeToProjectMembers(ctx context.Context, memberIDs []string, fn func([]models.UserProfile)) func() {
	var mu sync.Mutex
	byID := make(map[string]models.UserProfile, len(memberIDs))

	snapshot := func() []models.UserProfile {
		profiles := make([]models.UserProfile, 0, len(byID))
		for _, id := range memberIDs {
			if profile, ok := byID[id]; ok {
				profiles = append(profiles, profile)
			}
		}
		return profiles
	}

	unsubscribes := make([]func(), 0, len(memberIDs))
	for _, memberID := range memberIDs {
		memberID := memberID
		unsub := s.store.SubscribeDoc(ctx, models.CollectionUsers, memberID, func(doc docstore.Document) {
			mu.Lock()
			if doc == nil {
				delete(byID, memberID)
			} else {
				byID[memberID] = models.UserProfileFromDocument(doc)
			}
			current := snapshot()
			mu.Unlock()

			fn(current)
		})
		unsubscribes = append(unsubscribes, unsub)
	}

	return func() {
		for _, unsub := range unsubscribes {
			unsub()
		}
	}
}
