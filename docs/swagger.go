package docs

// @title 用户搜索服务 API
// @version 1.0
// @description 按姓名或兴趣检索社交网络用户资料，并按相关度排序
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
// @schemes http https
