// @title         ai-tutor API
// @version       1.0
// @description   AI tutor: answers student questions and explains lecture slides, with automatic fallback between two AI providers.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Access token. Accepts "Bearer <JWT>" or a bare "<JWT>".
package main

func main() {
	Execute()
}
