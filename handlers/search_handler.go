package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"profile_search/config"
	_ "profile_search/docs" // 导入 swagger 文档
	"profile_search/metrics"
	"profile_search/models"
	"profile_search/search"
	"profile_search/services"
	"profile_search/utils"
)

// parseSearchRequest 读取 q 与 type 参数，type 非法时写入错误响应并返回 false
func parseSearchRequest(w http.ResponseWriter, r *http.Request) (string, models.SearchMode, bool) {
	mode, err := models.ParseSearchMode(r.URL.Query().Get("type"))
	if err != nil {
		utils.WriteErrorResponse(w, models.CodeInvalidSearchType, map[string]interface{}{
			"param":   "type",
			"allowed": []models.SearchMode{models.SearchByName, models.SearchByInterests},
		})
		return "", "", false
	}
	return r.URL.Query().Get("q"), mode, true
}

func writeSearchResults(w http.ResponseWriter, raw string, mode models.SearchMode, results []models.SearchResult) {
	utils.WriteSuccessResponse(w, models.SearchPayload{
		Query:   search.ParseQuery(raw, mode).Raw,
		Type:    mode,
		Results: results,
	})
}

// SearchProfilesHandler godoc
// @Summary 搜索用户
// @Description 按姓名或兴趣搜索用户，结果按相关度从高到低排序，不返回分数
// @Tags 搜索
// @Produce json
// @Param q query string true "搜索词"
// @Param type query string false "搜索类型 name|interests，默认 name"
// @Param X-User-ID header string false "当前用户ID"
// @Success 200 {object} models.SearchResponse "成功"
// @Failure 400 {object} models.APIResponse "参数错误"
// @Router /api/search [get]
func SearchProfilesHandler(w http.ResponseWriter, r *http.Request, svc *services.SearchService) {
	raw, mode, ok := parseSearchRequest(w, r)
	if !ok {
		return
	}

	results := svc.Search(r.Context(), utils.CurrentUserID(r), raw, mode)
	writeSearchResults(w, raw, mode, results)
}

// LiveSearchHandler godoc
// @Summary 实时搜索下拉
// @Description 输入过程中的实时搜索，返回少量候选及其相关度分数和填充建议
// @Tags 搜索
// @Produce json
// @Param q query string true "搜索词"
// @Param type query string false "搜索类型 name|interests，默认 name"
// @Param X-User-ID header string false "当前用户ID"
// @Success 200 {object} models.SearchResponse "成功"
// @Failure 400 {object} models.APIResponse "参数错误"
// @Router /api/search/live [get]
func LiveSearchHandler(w http.ResponseWriter, r *http.Request, svc *services.SearchService) {
	raw, mode, ok := parseSearchRequest(w, r)
	if !ok {
		return
	}

	results := svc.LiveSearch(r.Context(), utils.CurrentUserID(r), raw, mode)
	writeSearchResults(w, raw, mode, results)
}

// RecentSearchesHandler godoc
// @Summary 最近搜索
// @Description 获取当前用户最近提交过的搜索词
// @Tags 搜索
// @Produce json
// @Param X-User-ID header string true "当前用户ID"
// @Param limit query int false "返回条数"
// @Success 200 {object} models.RecentSearchResponse "成功"
// @Failure 400 {object} models.APIResponse "参数错误"
// @Failure 500 {object} models.APIResponse "服务器错误"
// @Router /api/search/recent [get]
func RecentSearchesHandler(w http.ResponseWriter, r *http.Request, svc *services.SearchService) {
	userID := utils.CurrentUserID(r)
	if !utils.ValidateParam(w, utils.UserIDHeader, userID) {
		return
	}

	limit := utils.ParsePositiveInt(r.URL.Query().Get("limit"), 0)
	queries, err := svc.RecentSearches(r.Context(), userID, limit)
	if err != nil {
		utils.WriteCustomErrorResponse(w, models.CodeDatabaseError, err.Error(), map[string]interface{}{})
		return
	}
	utils.WriteSuccessResponse(w, queries)
}

// GetProfileHandler godoc
// @Summary 获取用户资料
// @Description 获取指定用户的资料
// @Tags 用户资料
// @Produce json
// @Param user_id path string true "用户ID"
// @Success 200 {object} models.ProfileResponse "成功"
// @Failure 400 {object} models.APIResponse "参数错误"
// @Failure 500 {object} models.APIResponse "服务器错误"
// @Router /api/profile/{user_id} [get]
func GetProfileHandler(w http.ResponseWriter, r *http.Request, svc *services.ProfileService) {
	userID := chi.URLParam(r, "user_id")
	if !utils.ValidateParam(w, "user_id", userID) {
		return
	}

	profile, err := svc.LoadProfile(r.Context(), userID)
	if err != nil {
		utils.HandleServiceError(w, err, models.CodeUserNotFound)
		return
	}
	if profile == nil {
		utils.WriteErrorResponse(w, models.CodeUserNotFound, map[string]interface{}{
			"user_id": userID,
		})
		return
	}

	utils.WriteSuccessResponse(w, profile)
}

func RegisterRoutes(r *chi.Mux, cfg *config.Config, searchSvc *services.SearchService, profileSvc *services.ProfileService) {
	// Swagger 文档
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), // Swagger JSON 的 URL
	))

	r.Handle("/metrics", metrics.Handler())

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteSuccessResponse(w, map[string]interface{}{
			"status": "ok",
			"addr":   cfg.Server.Addr,
		})
	})

	r.Get("/api/search", func(w http.ResponseWriter, r *http.Request) {
		SearchProfilesHandler(w, r, searchSvc)
	})

	r.Get("/api/search/live", func(w http.ResponseWriter, r *http.Request) {
		LiveSearchHandler(w, r, searchSvc)
	})

	r.Get("/api/search/recent", func(w http.ResponseWriter, r *http.Request) {
		RecentSearchesHandler(w, r, searchSvc)
	})

	r.Get("/api/profile/{user_id}", func(w http.ResponseWriter, r *http.Request) {
		GetProfileHandler(w, r, profileSvc)
	})
}
