package wire

import (
	"Bobmap/internal/config"
	"Bobmap/internal/gateway"
	"Bobmap/internal/job"
	"Bobmap/internal/pkg/cron"
	"Bobmap/internal/repository"
	"Bobmap/internal/service"
	"Bobmap/internal/session"
	"time"
)

// ClientContainer 封装了客户端核心运行所需的所有顶级组件
type ClientContainer struct {
	Session             *session.Session
	Gateway             gateway.SyncGateway
	Stream              *gateway.NotificationStream
	CronMgr             *cron.Manager
	FollowService       service.UserFollowService
	ProfileService      service.ProfileService
	MatchService        service.MatchService
	NotificationService service.NotificationService
	PlaylistService     service.PlaylistService
}

// Start 启动轮询兜底任务引擎。实时推送由调用方在自己的 goroutine 里驱动 Stream.Listen
func (s *ClientContainer) Start() error {
	return s.CronMgr.Start()
}

func (s *ClientContainer) Stop() {
	s.CronMgr.Stop()
}

func BuildClient(cfg *config.Config, token string) (*ClientContainer, error) {
	userRepo := repository.NewUserRepo()
	userFollowRepo := repository.NewUserFollowRepo()
	notificationRepo := repository.NewNotificationRepo(time.Duration(cfg.Notification.DedupWindowMs) * time.Millisecond)
	playlistRepo := repository.NewPlaylistRepo()

	notificationService := service.NewNotificationService(notificationRepo, userRepo)
	followService := service.NewUserFollowService(userFollowRepo, userRepo, notificationService, cfg.Follow.MaxFollowing)
	profileService := service.NewProfileService(userRepo)
	matchService := service.NewMatchService(userRepo, notificationService, cfg.Match.CacheSize, cfg.Match.Threshold)
	playlistService := service.NewPlaylistService(playlistRepo, userRepo, notificationService)

	gw := gateway.NewRestGateway(&cfg.Gateway, token)

	sess, err := session.NewSession(token, gw, userRepo, userFollowRepo, playlistRepo, followService, notificationService)
	if err != nil {
		return nil, err
	}

	pollJob := job.NewNotificationPollJob(gw, notificationService, sess.UserID())
	cronMgr := cron.NewCronManager(cfg.Notification.PollSchedule, pollJob)

	stream := gateway.NewNotificationStream(cfg.Gateway.WsURL, token, notificationService)

	return &ClientContainer{
		Session:             sess,
		Gateway:             gw,
		Stream:              stream,
		CronMgr:             cronMgr,
		FollowService:       followService,
		ProfileService:      profileService,
		MatchService:        matchService,
		NotificationService: notificationService,
		PlaylistService:     playlistService,
	}, nil
}
