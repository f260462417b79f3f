package workspaces_controllers

import (
	"sync"

	"teamspace/internal/config"
	workspaces_services "teamspace/internal/features/workspaces/services"
	"teamspace/internal/util/rate_limit"

	"golang.org/x/time/rate"
)

// Team creation is additionally capped process-wide.
const (
	teamCreationsPerSecond = 2
	teamCreationsBurst     = 10
)

var (
	controllersOnce           sync.Once
	workspaceMemberController *WorkspaceMemberController
	teamController            *TeamController
	workspaceController       *WorkspaceController
)

func setUpControllers() {
	controllersOnce.Do(func() {
		env := config.GetEnv()
		rateLimiter := rate_limit.NewRateLimiter()

		workspaceMemberController = NewWorkspaceMemberController(
			workspaces_services.GetWorkspaceMemberService(),
			rateLimiter,
			env.MemberMutationsPerSecond,
			env.MemberMutationsBurst,
			env.StoreTimeout,
		)

		teamController = NewTeamController(
			workspaces_services.GetWorkspaceMemberService(),
			rateLimiter,
			rate.NewLimiter(rate.Limit(teamCreationsPerSecond), teamCreationsBurst),
			env.MemberMutationsPerSecond,
			env.MemberMutationsBurst,
			env.StoreTimeout,
		)

		workspaceController = NewWorkspaceController(
			workspaces_services.GetWorkspaceService(),
			env.StoreTimeout,
		)
	})
}

func GetWorkspaceMemberController() *WorkspaceMemberController {
	setUpControllers()
	return workspaceMemberController
}

func GetTeamController() *TeamController {
	setUpControllers()
	return teamController
}

func GetWorkspaceController() *WorkspaceController {
	setUpControllers()
	return workspaceController
}
