package service

import (
	"context"
	"sort"

	"github.com/hercules-fit/hercules-api/internal/apperr"
	"github.com/hercules-fit/hercules-api/internal/repository"
)

// FriendInfo is one accepted friend of a queried user, annotated with whether
// they are also a friend of the authenticated caller.
type FriendInfo struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	ProfilePhoto string `json:"profile_photo"`
	MutualFriend bool   `json:"mutual_friend"`
}

// PendingRequest is an incoming friend request with requester display info.
type PendingRequest struct {
	RequestID    uint   `json:"request_id"`
	RequesterID  uint   `json:"requester_id"`
	Username     string `json:"username"`
	ProfilePhoto string `json:"profile_photo"`
}

// SearchResult is a user matched by a partial username search, annotated with
// the friendship status relative to the searcher.
type SearchResult struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	ProfilePhoto string `json:"profile_photo"`
	Status       string `json:"status"` // accepted, pending, none
}

const searchLimit = 10

// SocialService manages the friendship state machine per unordered pair:
// none -> pending -> accepted, or pending -> none on rejection. The stored
// edge always points requester -> recipient.
type SocialService struct {
	friends repository.FriendshipRepository
	users   repository.UserRepository
}

func NewSocialService(friends repository.FriendshipRepository, users repository.UserRepository) *SocialService {
	return &SocialService{friends: friends, users: users}
}

// SendRequest inserts a pending edge from -> to. Duplicate pending requests
// are not blocked beyond what storage enforces.
func (s *SocialService) SendRequest(ctx context.Context, from, to uint) error {
	if from == to {
		return apperr.InvalidInput("cannot send a friend request to yourself")
	}
	if err := s.friends.Create(ctx, from, to); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// AcceptRequest is performed by the recipient: the pending edge is looked up
// with requester -> recipient, the direction it was stored with.
func (s *SocialService) AcceptRequest(ctx context.Context, requesterID, recipientID uint) error {
	ok, err := s.friends.Accept(ctx, requesterID, recipientID)
	if err != nil {
		return apperr.Internal(err)
	}
	if !ok {
		return apperr.NotFound("no pending request found")
	}
	return nil
}

// RejectRequest deletes the pending edge, same direction convention as
// AcceptRequest.
func (s *SocialService) RejectRequest(ctx context.Context, requesterID, recipientID uint) error {
	if err := s.friends.DeletePending(ctx, requesterID, recipientID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// AreFriends is true iff an accepted edge exists in either direction.
func (s *SocialService) AreFriends(ctx context.Context, a, b uint) (bool, error) {
	ok, err := s.friends.ExistsAccepted(ctx, a, b)
	if err != nil {
		return false, apperr.Internal(err)
	}
	return ok, nil
}

// FriendsOf lists the accepted friends of userID. Each entry is annotated
// with whether that friend is also an accepted friend of callerID, and
// mutual friends sort first.
func (s *SocialService) FriendsOf(ctx context.Context, userID, callerID uint) ([]FriendInfo, error) {
	users, err := s.friends.ListAcceptedUsers(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	callerFriends, err := s.friends.ListAcceptedIDs(ctx, callerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	mutual := make(map[uint]struct{}, len(callerFriends))
	for _, id := range callerFriends {
		mutual[id] = struct{}{}
	}

	res := make([]FriendInfo, 0, len(users))
	for _, u := range users {
		_, isMutual := mutual[u.ID]
		res = append(res, FriendInfo{
			ID:           u.ID,
			Username:     u.Username,
			ProfilePhoto: profilePhotoURL(u.ProfilePhoto),
			MutualFriend: isMutual,
		})
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].MutualFriend && !res[j].MutualFriend
	})
	return res, nil
}

// PendingFor lists incoming pending requests for the recipient.
func (s *SocialService) PendingFor(ctx context.Context, recipientID uint) ([]PendingRequest, error) {
	edges, err := s.friends.ListPendingFor(ctx, recipientID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	res := make([]PendingRequest, 0, len(edges))
	for _, e := range edges {
		u, err := s.users.GetByID(ctx, e.RequesterID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		res = append(res, PendingRequest{
			RequestID:    e.ID,
			RequesterID:  e.RequesterID,
			Username:     u.Username,
			ProfilePhoto: profilePhotoURL(u.ProfilePhoto),
		})
	}
	return res, nil
}

// Search matches usernames partially and case-insensitively, excluding the
// searcher, capped at 10 results, each carrying the pair's friendship status.
func (s *SocialService) Search(ctx context.Context, fragment string, selfID uint) ([]SearchResult, error) {
	users, err := s.users.SearchByUsername(ctx, fragment, selfID, searchLimit)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	res := make([]SearchResult, 0, len(users))
	for _, u := range users {
		status, err := s.friends.StatusBetween(ctx, selfID, u.ID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if status == "" {
			status = "none"
		}
		res = append(res, SearchResult{
			ID:           u.ID,
			Username:     u.Username,
			ProfilePhoto: profilePhotoURL(u.ProfilePhoto),
			Status:       status,
		})
	}
	return res, nil
}
