package admin

type ListUsersQuery struct {
	Page  int `form:"page,default=1" binding:"omitempty,min=1"`
	Limit int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

type StatsResponse struct {
	TotalUsers   int64 `json:"total_users"`
	TotalPosts   int64 `json:"total_posts"`
	TotalUploads int64 `json:"total_uploads"`
}
