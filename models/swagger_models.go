package models

// APIResponse 通用API响应
type APIResponse struct {
	Code    int         `json:"code" example:"0"`
	Message string      `json:"message" example:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// SearchResponse 搜索响应
type SearchResponse struct {
	Code    int           `json:"code" example:"0"`
	Message string        `json:"message" example:"success"`
	Data    SearchPayload `json:"data"`
}

// SearchPayload 搜索响应数据
type SearchPayload struct {
	Query   string         `json:"query" example:"jane doe"`
	Type    SearchMode     `json:"type" example:"name"`
	Results []SearchResult `json:"results"`
}

// ProfileResponse 用户资料响应
type ProfileResponse struct {
	Code    int     `json:"code" example:"0"`
	Message string  `json:"message" example:"success"`
	Data    Profile `json:"data"`
}

// RecentSearchResponse 最近搜索响应
type RecentSearchResponse struct {
	Code    int      `json:"code" example:"0"`
	Message string   `json:"message" example:"success"`
	Data    []string `json:"data"`
}
