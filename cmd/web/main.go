// @title           HR Portal API
// @version         1.0
// @description     API управления сотрудниками: учетные записи, профили и политика отпусков.
// @contact.name    HR Portal
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /api/v1

package main

import (
	_ "hrportal_backend/docs"
	"hrportal_backend/internal/app"
)

func main() {
	app.Run()
}
