package provider

import (
	"github.com/google/wire"

	"tuition-show/biz/application/service"
	"tuition-show/biz/infrastructure/cache"
	"tuition-show/biz/infrastructure/config"
	"tuition-show/biz/infrastructure/event"
	"tuition-show/biz/infrastructure/mail"
	"tuition-show/biz/infrastructure/metrics"
	"tuition-show/biz/infrastructure/mongo"
	"tuition-show/biz/infrastructure/redis"
	"tuition-show/biz/infrastructure/repository/catalog"
	"tuition-show/biz/infrastructure/repository/course"
	"tuition-show/biz/infrastructure/repository/democlass"
	"tuition-show/biz/infrastructure/repository/outbox"
	"tuition-show/biz/infrastructure/repository/transaction"
	"tuition-show/biz/infrastructure/repository/user"
)

var provider *Provider

// Init 构建依赖，返回的 cleanup 在服务退出时调用
func Init() func() {
	var (
		err     error
		cleanup func()
	)
	provider, cleanup, err = NewProvider()
	if err != nil {
		panic(err)
	}
	return cleanup
}

// Provider 提供controller依赖的对象
type Provider struct {
	Config               *config.Config
	Metrics              *metrics.Metrics
	AuthService          service.IAuthService
	DemoClassService     service.IDemoClassService
	TeacherService       service.ITeacherService
	StudentService       service.IStudentService
	CourseService        service.ICourseService
	CourseMessageService service.ICourseMessageService
	TransactionService   service.ITransactionService
	DashboardService     service.IDashboardService
	CatalogService       service.ICatalogService
	NotificationService  service.INotificationService
}

func Get() *Provider {
	return provider
}

var ApplicationSet = wire.NewSet(
	service.AuthServiceSet,
	service.DemoClassServiceSet,
	service.TeacherServiceSet,
	service.StudentServiceSet,
	service.CourseServiceSet,
	service.CourseMessageServiceSet,
	service.TransactionServiceSet,
	service.DashboardServiceSet,
	service.CatalogServiceSet,
	service.NotificationServiceSet,
)

var InfrastructureSet = wire.NewSet(
	config.NewConfig,
	metrics.NewMetrics,
	mongo.NewClient,
	mongo.NewDatabase,
	redis.NewRedis,
	mail.NewMailer,
	event.NewPublisher,
	catalog.NewMapperFromConfig,
	MapperSet,
)

var MapperSet = wire.NewSet(
	user.NewMongoMapper,
	wire.Bind(new(user.IMongoMapper), new(*user.MongoMapper)),
	democlass.NewMongoMapper,
	wire.Bind(new(democlass.IMongoMapper), new(*democlass.MongoMapper)),
	course.NewMongoMapper,
	wire.Bind(new(course.IMongoMapper), new(*course.MongoMapper)),
	course.NewMessageMongoMapper,
	wire.Bind(new(course.IMessageMongoMapper), new(*course.MessageMongoMapper)),
	transaction.NewMongoMapper,
	wire.Bind(new(transaction.IMongoMapper), new(*transaction.MongoMapper)),
	outbox.NewMongoMapper,
	wire.Bind(new(outbox.IMongoMapper), new(*outbox.MongoMapper)),
	cache.NewOtpCacheMapper,
	wire.Bind(new(cache.IOtpCacheMapper), new(*cache.OtpCacheMapper)),
)

var AllProvider = wire.NewSet(
	wire.Struct(new(Provider), "*"),
	ApplicationSet,
	InfrastructureSet,
)
