// @title           Deal Desk API
// @version         1.0
// @description     This API turns uploaded pitch decks into investor-ready memos.
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:9000
// @BasePath  /
// @schemes   http https
package utils

//run redis
//docker run -p 6379:6379 -d redis

//run minio
//docker run -p 9090:9000 -p 9091:9001 -v blobData:/data minio/minio server /data --console-address ":9001"

//swagger init
//swag init -g cmd/api/main.go --parseDependency --parseInternal --dir ./ --output ./cmd/api/docs
