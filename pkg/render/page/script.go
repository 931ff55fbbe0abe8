package page

// pageJS wires the tooltip and the zoom/pan behaviour. The viewport math
// mirrors viewport.State: wheel steps scale around the centre within the
// clamp bounds, drags move the viewBox by the pointer delta scaled from
// screen pixels to drawing units.
const pageJS = `
(function () {
  const svg = document.querySelector('#map svg');
  const tip = document.getElementById('tooltip');
  if (!svg) return;

  let timer = null;
  svg.querySelectorAll('.box').forEach(el => {
    el.addEventListener('mouseenter', e => {
      clearTimeout(timer);
      timer = setTimeout(() => {
        tip.textContent = '';
        const title = document.createElement('strong');
        title.textContent = el.dataset.label || '';
        tip.appendChild(title);
        if (el.dataset.def) {
          const def = document.createElement('div');
          def.textContent = el.dataset.def;
          tip.appendChild(def);
        }
        tip.style.display = 'block';
      }, TOPICMAP.tooltipDelayMs);
    });
    el.addEventListener('mousemove', e => {
      tip.style.left = e.clientX + TOPICMAP.tooltipOffset + 'px';
      tip.style.top = e.clientY + TOPICMAP.tooltipOffset + 'px';
    });
    el.addEventListener('mouseleave', () => {
      clearTimeout(timer);
      tip.style.display = 'none';
    });
  });

  const vb = svg.viewBox.baseVal;
  const view = { x: vb.x, y: vb.y, w: vb.width, h: vb.height };
  function apply() { svg.setAttribute('viewBox', view.x + ' ' + view.y + ' ' + view.w + ' ' + view.h); }
  function setScale(scale) {
    if (TOPICMAP.clamp) scale = Math.min(Math.max(scale, TOPICMAP.minScale), TOPICMAP.maxScale);
    const cx = view.x + view.w / 2, cy = view.y + view.h / 2;
    view.w = TOPICMAP.baseWidth / scale;
    view.h = TOPICMAP.baseHeight / scale;
    view.x = cx - view.w / 2;
    view.y = cy - view.h / 2;
    apply();
  }

  svg.addEventListener('wheel', e => {
    e.preventDefault();
    if (e.deltaY === 0) return;
    const scale = TOPICMAP.baseWidth / view.w;
    setScale(e.deltaY < 0 ? scale * TOPICMAP.zoomStep : scale / TOPICMAP.zoomStep);
  }, { passive: false });

  let drag = null;
  svg.addEventListener('pointerdown', e => {
    if (e.target.closest('a')) return;
    drag = { x: e.clientX, y: e.clientY };
    svg.setPointerCapture(e.pointerId);
    svg.style.cursor = 'grabbing';
  });
  svg.addEventListener('pointermove', e => {
    if (!drag) return;
    const rect = svg.getBoundingClientRect();
    if (rect.width === 0 || rect.height === 0) return;
    view.x -= (e.clientX - drag.x) * view.w / rect.width;
    view.y -= (e.clientY - drag.y) * view.h / rect.height;
    drag = { x: e.clientX, y: e.clientY };
    apply();
  });
  function stop() { drag = null; svg.style.cursor = 'grab'; }
  svg.addEventListener('pointerup', stop);
  svg.addEventListener('pointerleave', stop);
})();
`
