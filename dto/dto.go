// Package dto holds request bodies and response projections. Responses never
// carry password hashes.
package dto

import "tellsapi/models"

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserName string `json:"user_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type CreateTellRequest struct {
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Message    string `json:"message"`
	Status     *int   `json:"status"`
	UserName   string `json:"user_name"`
}

type ReplyRequest struct {
	Reply string `json:"reply"`
}

type FollowRequest struct {
	FollowerName  string `json:"followerName"`
	FollowingName string `json:"followingName"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// AnsweredTellDTO is the public view of an answered tell
type AnsweredTellDTO struct {
	ID         uint    `json:"id"`
	SenderID   string  `json:"sender_id"`
	ReceiverID string  `json:"receiver_id"`
	Message    string  `json:"message"`
	Reply      *string `json:"reply"`
	UserName   string  `json:"user_name"`
}

func NewAnsweredTells(tells []models.Tell) []AnsweredTellDTO {
	out := make([]AnsweredTellDTO, len(tells))
	for i, t := range tells {
		out[i] = AnsweredTellDTO{
			ID:         t.ID,
			SenderID:   t.SenderID,
			ReceiverID: t.ReceiverID,
			Message:    t.Message,
			Reply:      t.Reply,
			UserName:   t.UserName,
		}
	}
	return out
}

type CountsDTO struct {
	ReactCount   int `json:"react_count"`
	CommentCount int `json:"comment_count"`
}

type UserNameDTO struct {
	UserName string `json:"user_name"`
}

type FollowingTargetDTO struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
}

type FollowingDTO struct {
	ID          uint               `json:"id"`
	UserID      string             `json:"user_id"`
	FollowingID string             `json:"following_id"`
	UserName    string             `json:"user_name"`
	User        FollowingTargetDTO `json:"user"`
}

func NewFollowing(rows []models.Following) []FollowingDTO {
	out := make([]FollowingDTO, len(rows))
	for i, f := range rows {
		out[i] = FollowingDTO{
			ID:          f.ID,
			UserID:      f.UserID,
			FollowingID: f.FollowingID,
			UserName:    f.UserName,
			User: FollowingTargetDTO{
				UserName: f.Target.UserName,
				Email:    f.Target.Email,
			},
		}
	}
	return out
}
