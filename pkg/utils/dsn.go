package utils

import (
	"strings"

	"mytube.com/config"
)

func GetMysqlDsn() string {
	//生成数据库的dsn
	c := config.ConfigInfo.Mysql
	return strings.Join([]string{c.Username, ":", c.Password, "@tcp(", c.Addr, ")/",
		c.Database, "?charset=" + c.Charset + "&parseTime=true&loc=UTC"}, "") //nolint:lll
}
