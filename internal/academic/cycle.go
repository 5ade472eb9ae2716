package academic

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	pkgerrors "github.com/Jackson-sch/sistema-escolar-sub001/pkg/errors"
)

// DefaultMaxParentHops 上溯父链的默认最大步数
const DefaultMaxParentHops = 1000

// ParentLookup 读取学科领域的父节点 id（无父节点时为 nil）
type ParentLookup interface {
	GetParentID(ctx context.Context, institucionID, id string) (*string, error)
}

// CycleGuard 学科领域父子关系环检测
type CycleGuard struct {
	lookup  ParentLookup
	maxHops int
}

// NewCycleGuard 创建 CycleGuard；maxHops <= 0 时使用默认值
func NewCycleGuard(lookup ParentLookup, maxHops int) *CycleGuard {
	if maxHops <= 0 {
		maxHops = DefaultMaxParentHops
	}
	return &CycleGuard{lookup: lookup, maxHops: maxHops}
}

// WouldCreateCycle 判断把 potentialParentID 设为 areaID 的父节点是否成环。
//
// 自引用直接返回 IntegrityError；沿父链上溯遇到 areaID 返回 true；
// 先遇到已访问节点说明环与本节点无关，返回 false；超过 maxHops 返回 IntegrityError。
func (g *CycleGuard) WouldCreateCycle(ctx context.Context, institucionID, areaID string, potentialParentID *string) (bool, error) {
	if potentialParentID == nil || *potentialParentID == "" {
		return false, nil
	}
	if *potentialParentID == areaID {
		return false, pkgerrors.Integrity("parentId", "Un área curricular no puede ser su propia área padre")
	}

	visited := make(map[string]struct{})
	current := *potentialParentID

	for hops := 0; ; hops++ {
		if current == areaID {
			return true, nil
		}
		if _, seen := visited[current]; seen {
			return false, nil
		}
		if hops >= g.maxHops {
			return false, pkgerrors.Integrity("parentId", "La jerarquía de áreas curriculares excede la profundidad máxima permitida")
		}
		visited[current] = struct{}{}

		parent, err := g.lookup.GetParentID(ctx, institucionID, current)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if current == *potentialParentID {
					return false, pkgerrors.NotFound("parentId", "El área curricular padre no existe")
				}
				// 父链中途断开，视为到达根
				return false, nil
			}
			return false, fmt.Errorf("leer área padre: %w", err)
		}
		if parent == nil || *parent == "" {
			return false, nil
		}
		current = *parent
	}
}
