package deps

import (
	"context"
	"net/url"
	"securecrop/internal/config"
	"securecrop/internal/core/domain/auditlog"
	"securecrop/internal/core/domain/cyberlog"
	dl "securecrop/internal/core/domain/logging"
	drl "securecrop/internal/core/domain/rate_limiter"
	duow "securecrop/internal/core/domain/unit_of_work"
	"securecrop/internal/core/domain/user"
	dbauditlog "securecrop/internal/db/auditlog"
	dbcyberlog "securecrop/internal/db/cyberlog"
	uow "securecrop/internal/db/unit_of_work"
	dbuser "securecrop/internal/db/user"
	"securecrop/internal/implementations/email"
	"securecrop/internal/implementations/logging"
	passwordhasher "securecrop/internal/implementations/password_hasher"
	randomstringgenerator "securecrop/internal/implementations/random_string_generator"
	ratelimiter "securecrop/internal/implementations/rate_limiter"
	securityeventstream "securecrop/internal/implementations/security_event_stream"
	"securecrop/internal/rabbitmq"
	passwordresetemail "securecrop/internal/rabbitmq/publishers/password_reset_email"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/r3labs/sse/v2"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB        *pgxpool.Pool
	Redis     *redis.Client
	Rabbitmq  *rabbitmq.Connection
	SseServer *sse.Server

	Now func() time.Time

	UnitOfWork              duow.UnitOfWork
	UserRepository          user.UserRepository
	SessionRepository       user.SessionRepository
	PasswordResetRepository user.PasswordResetRepository
	AdminLogRepository      auditlog.Repository
	CyberLogRepository      cyberlog.Repository

	RateLimiter drl.RateLimiter

	EmailSender *email.EmailSender

	SessionTokenGenerator       user.SessionTokenGenerator
	PasswordResetTokenGenerator user.PasswordResetTokenGenerator
	PasswordResetTokenSender    user.PasswordResetTokenSender
	PasswordHasher              user.PasswordHasher

	SecurityEventStream cyberlog.EventStream
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()
	closeSseServer := deps.initSseServer()

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)
	deps.SessionRepository = dbuser.NewPgxSessionRepository(deps.DB)
	deps.PasswordResetRepository = dbuser.NewPgxPasswordResetRepository(deps.DB)
	deps.AdminLogRepository = dbauditlog.NewPgxRepository(deps.DB)
	deps.CyberLogRepository = dbcyberlog.NewPgxRepository(deps.DB)

	deps.EmailSender = email.NewEmailSender(
		deps.AwsConfig,
		deps.Config.AwsEmailSender,
		deps.passwordResetBaseURL(),
	)

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)
	deps.SessionTokenGenerator = randomstringgenerator.NewGenerator()
	deps.PasswordResetTokenGenerator = randomstringgenerator.NewGenerator()
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.SecurityEventStream = securityeventstream.NewSSEStream(deps.SseServer)

	closePasswordResetPublisher := deps.initPasswordResetTokenSender()

	return deps, func() {
		closeFuncs := []func(){
			closeSseServer,
			closePasswordResetPublisher,
			closeRabbitmqConn,
			closeRedisClient,
			closePgxPool,
			closeLogger,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initPasswordResetTokenSender() func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqPasswordResetEmailsQueue
	if _, err := rabbitmqChannel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ queue.", dl.Entry("err", err))
		panic(err)
	}

	deps.PasswordResetTokenSender = passwordresetemail.NewRabbitMQ(
		deps.Logger,
		rabbitmqChannel,
		"",
		queue,
	)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down password reset email publisher.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Password reset email publisher shut down.")
	}
}

func (deps *Deps) initSseServer() func() {
	deps.SseServer = sse.New()
	deps.SseServer.AutoStream = false
	deps.SseServer.AutoReplay = false
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down SSE server.")
		deps.SseServer.Close()
		deps.Logger.Info(context.Background(), "SSE server shut down.")
	}
}

func (deps *Deps) passwordResetBaseURL() url.URL {
	baseURL, err := url.Parse(deps.Config.PasswordResetBaseURL)
	if err != nil {
		panic(err)
	}
	return *baseURL
}
