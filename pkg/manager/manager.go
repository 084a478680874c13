package manager

import (
	"sync"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vidprocc/vidpro/pkg/config"
	"github.com/vidprocc/vidpro/pkg/logger"
)

// Resource 外部资源（数据库、缓存、消息队列等）的生命周期抽象
type Resource interface {
	MustOpen()
	Close()
}

// ResourcePlugin 资源注册插件
type ResourcePlugin interface {
	Name() string
	MustCreateResource() Resource
}

// Component 业务组件（worker、ticker等）
type Component interface {
	Start() error
	Stop() error
	GetName() string
}

// ComponentPlugin 组件注册插件
type ComponentPlugin interface {
	Name() string
	MustCreateComponent(deps *Dependencies) Component
}

// RouteRegistrar 路由注册回调
type RouteRegistrar func(r *gin.Engine, deps *Dependencies)

// Dependencies 依赖注入容器，启动时组装一次
type Dependencies struct {
	DB     *gorm.DB
	Config *config.Config

	// 应用服务按接口注入，插件侧类型断言取用
	MediaApp   interface{}
	Spooler    interface{}
	Transcoder interface{}
}

var (
	mu              sync.Mutex
	resourcePlugins []ResourcePlugin
	resources       []Resource
	componentPlugs  []ComponentPlugin
	components      []Component
	routeRegistrars []RouteRegistrar
)

// RegisterResourcePlugin 注册资源插件（init阶段调用）
func RegisterResourcePlugin(p ResourcePlugin) {
	mu.Lock()
	defer mu.Unlock()
	resourcePlugins = append(resourcePlugins, p)
}

// RegisterComponentPlugin 注册组件插件（init阶段调用）
func RegisterComponentPlugin(p ComponentPlugin) {
	mu.Lock()
	defer mu.Unlock()
	componentPlugs = append(componentPlugs, p)
}

// RegisterRoutes 注册路由回调（init阶段调用）
func RegisterRoutes(f RouteRegistrar) {
	mu.Lock()
	defer mu.Unlock()
	routeRegistrars = append(routeRegistrars, f)
}

// MustInitResources 打开所有已注册资源，失败即panic
func MustInitResources() {
	mu.Lock()
	defer mu.Unlock()
	for _, p := range resourcePlugins {
		logger.Infof("Opening resource name=%s", p.Name())
		res := p.MustCreateResource()
		res.MustOpen()
		resources = append(resources, res)
	}
}

// CloseResources 逆序关闭所有资源
func CloseResources() {
	mu.Lock()
	defer mu.Unlock()
	for i := len(resources) - 1; i >= 0; i-- {
		resources[i].Close()
	}
	resources = nil
}

// MustInitComponents 创建并启动所有组件
func MustInitComponents(deps *Dependencies) {
	mu.Lock()
	defer mu.Unlock()
	for _, p := range componentPlugs {
		c := p.MustCreateComponent(deps)
		if err := c.Start(); err != nil {
			panic("failed to start component " + c.GetName() + ": " + err.Error())
		}
		logger.Infof("Component started name=%s", c.GetName())
		components = append(components, c)
	}
}

// RegisterAllRoutes 执行所有路由注册回调
func RegisterAllRoutes(r *gin.Engine, deps *Dependencies) {
	mu.Lock()
	defer mu.Unlock()
	for _, f := range routeRegistrars {
		f(r, deps)
	}
}

// Shutdown 逆序停止所有组件
func Shutdown() {
	mu.Lock()
	defer mu.Unlock()
	for i := len(components) - 1; i >= 0; i-- {
		if err := components[i].Stop(); err != nil {
			logger.Errorf("Failed to stop component name=%s error=%v", components[i].GetName(), err)
		}
	}
	components = nil
}
