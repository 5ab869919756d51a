package models

// Following is the "user_id follows following_id" side of a follow edge.
// UserName is the handle of the followed user.
type Following struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      string `gorm:"column:user_id;size:64;not null;uniqueIndex:idx_following_pair" json:"user_id"`
	FollowingID string `gorm:"column:following_id;size:64;not null;uniqueIndex:idx_following_pair" json:"following_id"`
	UserName    string `gorm:"column:user_name;size:64" json:"user_name"`
	Target      User   `gorm:"foreignKey:FollowingID;references:UserID" json:"-"`
}

// TableName overrides the table name used by GORM
func (Following) TableName() string {
	return "following"
}

// Follower is the mirrored "follower_id follows user_id" side of the same edge.
// UserName is the handle of the follower.
type Follower struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	UserID     string `gorm:"column:user_id;size:64;not null;uniqueIndex:idx_follower_pair" json:"user_id"`
	FollowerID string `gorm:"column:follower_id;size:64;not null;uniqueIndex:idx_follower_pair" json:"follower_id"`
	UserName   string `gorm:"column:user_name;size:64" json:"user_name"`
}

// TableName overrides the table name used by GORM
func (Follower) TableName() string {
	return "followers"
}
