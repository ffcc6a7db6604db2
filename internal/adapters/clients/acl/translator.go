package acl

import "github.com/nholloway4/followd/internal/domain/follower"

// accountDTO matches the abbreviated user object GitHub returns in listing
// endpoints (followers, following).
type accountDTO struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

// userDTO matches the full user object from GET /users/{login}.
type userDTO struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Followers int    `json:"followers"`
	Following int    `json:"following"`
}

// toDomainFollower converts a listing entry to a domain Follower.
func toDomainFollower(dto accountDTO) follower.Follower {
	return follower.Follower{
		ID:        dto.ID,
		Login:     dto.Login,
		AvatarURL: dto.AvatarURL,
	}
}

// toDomainFollowerList converts one page of listing entries.
func toDomainFollowerList(dtos []accountDTO) []follower.Follower {
	followers := make([]follower.Follower, len(dtos))
	for i, dto := range dtos {
		followers[i] = toDomainFollower(dto)
	}
	return followers
}

// toDomainUser converts a full user object to a domain User.
func toDomainUser(dto *userDTO) *follower.User {
	return &follower.User{
		ID:             dto.ID,
		Login:          dto.Login,
		Name:           dto.Name,
		AvatarURL:      dto.AvatarURL,
		FollowerCount:  dto.Followers,
		FollowingCount: dto.Following,
	}
}
