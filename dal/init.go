package dal

import (
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gorm.io/driver/mysql"
	gormopentracing "gorm.io/plugin/opentracing"

	"mytube.com/dal/db"
	"mytube.com/pkg/utils"
)

// Init connects to MySQL with query tracing enabled.
func Init() {
	if err := db.Init(mysql.Open(utils.GetMysqlDsn()), gormopentracing.New()); err != nil {
		hlog.Fatalf("Failed to initialize database: %v", err)
	}
	hlog.Info("MySQL connected")
}
