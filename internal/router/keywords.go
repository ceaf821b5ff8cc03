// Package router classifies free-text work requests into track plans.
// A zero-latency rule layer handles the common patterns; anything it is
// not confident about escalates to an external planner behind the
// Classifier interface.
package router

import "github.com/wukongd/wukong/pkg/models"

// TrackKeywords is the single source of truth for track classification
// keywords. The tables are matched as lowercase substrings; confidence
// is derived from how many keywords of a track's table matched.
type TrackKeywords map[models.Track][]string

// DefaultTrackKeywords returns the authoritative keyword tables,
// bilingual like the rest of the routing vocabulary. They can be
// overridden from the rules file in the user config.
func DefaultTrackKeywords() TrackKeywords {
	return TrackKeywords{
		models.TrackFix: {
			"fix",
			"bug",
			"error",
			"crash",
			"issue",
			"broken",
			"regression",
			"failure",
			"resolve",
			"修复",
			"修正",
			"解决",
			"问题",
		},
		models.TrackFeature: {
			"add",
			"create",
			"new",
			"implement",
			"feature",
			"develop",
			"build",
			"support",
			"introduce",
			"添加",
			"创建",
			"新增",
			"实现",
			"开发",
			"功能",
		},
		models.TrackRefactor: {
			"refactor",
			"clean",
			"cleanup",
			"optimize",
			"modernize",
			"restructure",
			"simplify",
			"tidy",
			"重构",
			"优化",
			"清理",
			"整理",
		},
		models.TrackResearch: {
			"research",
			"explore",
			"investigate",
			"study",
			"understand",
			"look into",
			"find out",
			"figure out",
			"研究",
			"调研",
			"了解",
			"学习",
			"探索",
			"看看",
			"查一下",
		},
	}
}

// agentAliases maps explicit @agent markers to roles, in both the
// Chinese and English forms.
var agentAliases = map[string]models.Role{
	"eye":         models.RoleEye,
	"explorer":    models.RoleEye,
	"眼":           models.RoleEye,
	"ear":         models.RoleEar,
	"analyst":     models.RoleEar,
	"耳":           models.RoleEar,
	"nose":        models.RoleNose,
	"reviewer":    models.RoleNose,
	"鼻":           models.RoleNose,
	"tongue":      models.RoleTongue,
	"tester":      models.RoleTongue,
	"舌":           models.RoleTongue,
	"body":        models.RoleBody,
	"impl":        models.RoleBody,
	"implementer": models.RoleBody,
	"身":           models.RoleBody,
	"斗战胜佛":        models.RoleBody,
	"mind":        models.RoleMind,
	"architect":   models.RoleMind,
	"意":           models.RoleMind,
}

// agentTracks maps an explicitly requested role to the track whose
// template contains it.
var agentTracks = map[models.Role]models.Track{
	models.RoleEye:    models.TrackResearch,
	models.RoleEar:    models.TrackFeature,
	models.RoleNose:   models.TrackFix,
	models.RoleTongue: models.TrackFeature,
	models.RoleBody:   models.TrackFeature,
	models.RoleMind:   models.TrackFeature,
}
