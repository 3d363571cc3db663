package catalog

import (
	"tuition-show/biz/infrastructure/config"
	"tuition-show/biz/infrastructure/util/log"
)

// NewMapperFromConfig 配置了 DSN 时连接 MySQL，否则退回内置列表
func NewMapperFromConfig(config *config.Config) (IMapper, func(), error) {
	if config.MySQL.DSN == "" {
		log.Info("MySQL.DSN not set, using built-in subject catalog")
		return StaticMapper{}, func() {}, nil
	}
	m, err := NewMySQLMapper(config.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	return m, func() {
		if err := m.Close(); err != nil {
			log.Error("close mysql failed: %v", err)
		}
	}, nil
}
